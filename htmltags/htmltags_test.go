package htmltags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobbcode/bbcode"
)

func newParser(t *testing.T) *bbcode.Parser {
	t.Helper()
	p, err := bbcode.New(DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestBoldItalicUnderlineStrike(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[b]a[/b][i]b[/i][u]c[/u][s]d[/s]")
	require.NoError(t, err)
	assert.Equal(t, "<b>a</b><i>b</i><u>c</u><s>d</s>", got)
}

func TestURLBothForms(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[url]http://example.com[/url]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="http://example.com" rel="nofollow">http://example.com</a>`, got)

	got, err = p.Render("[url=http://example.com]click here[/url]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="http://example.com" rel="nofollow">click here</a>`, got)
}

func TestURLRejectsNonURLFallback(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[url=javascript:alert(1)]x[/url]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="" rel="nofollow">x</a>`, got)
}

func TestWikipediaShortTag(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[wikipedia://Go_(programming_language)|the Go page]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="https://en.wikipedia.org/wiki/Go_%28programming_language%29" rel="nofollow">the Go page</a>`, got)
}

func TestImg(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[img]http://example.com/x.png[/img]")
	require.NoError(t, err)
	assert.Equal(t, `<img src="http://example.com/x.png" alt="">`, got)
}

func TestQuoteWithoutAuthor(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[quote]hi[/quote]")
	require.NoError(t, err)
	assert.Contains(t, got, `<blockquote>`)
	assert.Contains(t, got, `Quote:`)
	assert.Contains(t, got, `hi`)
}

func TestQuoteWithAuthor(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[quote=Alice]hi[/quote]")
	require.NoError(t, err)
	assert.Contains(t, got, `Alice wrote:`)
}

func TestCodeIsVerbatimAndEscaped(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[code][b]not bold[/b][/code]")
	require.NoError(t, err)
	assert.Equal(t, `<pre class="bbcode-code">[b]not bold[/b]</pre>`, got)
}

func TestNoparseIsVerbatimAndEscaped(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[noparse] [b]x[/b] [/noparse]")
	require.NoError(t, err)
	assert.Equal(t, `<pre> [b]x[/b] </pre>`, got)
}

func TestSizeRejectsNonNumeric(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[size=huge]x[/size]")
	require.NoError(t, err)
	assert.Equal(t, `<font size="">x</font>`, got)
}

func TestSizeAcceptsNumeric(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[size=7]big[/size]")
	require.NoError(t, err)
	assert.Equal(t, `<font size="7">big</font>`, got)
}

func TestColor(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[color=#ff0000]x[/color]")
	require.NoError(t, err)
	assert.Equal(t, `<span style="color:#ff0000">x</span>`, got)
}

func TestColorRejectsInvalid(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[color=notacolor]x[/color]")
	require.NoError(t, err)
	assert.Equal(t, `<span style="color:">x</span>`, got)
}

func TestEmailBothForms(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[email]user@example.com[/email]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="mailto:user@example.com">user@example.com</a>`, got)

	got, err = p.Render("[email=user@example.com]contact us[/email]")
	require.NoError(t, err)
	assert.Equal(t, `<a href="mailto:user@example.com">contact us</a>`, got)
}

func TestListOrderedAndUnordered(t *testing.T) {
	p := newParser(t)
	got, err := p.Render("[list][*]one[/*][*]two[/*][/list]")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>one</li><li>two</li></ul>", got)

	got, err = p.Render("[list=1][*]one[/*][/list]")
	require.NoError(t, err)
	assert.Equal(t, `<ol type="1"><li>one</li></ol>`, got)
}
