package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gobbcode/bbcode/escape"
	"github.com/gobbcode/bbcode/parse"
)

func newTemplateEngine() *Engine {
	return &Engine{Escapes: escape.NewRegistry(nil)}
}

func tagWithFallback(name, fallback string, children []parse.Node) *parse.Tag {
	pdefs := simpleParseDefs{name: {Class: parse.ClassInline, Classic: true, ParseContent: true}}
	var tree *parse.Tree
	if fallback != "" {
		tree = parse.BuildTree("["+name+"="+fallback+"]", parse.Options{Defs: pdefs, StrictAttributes: true, DirectAttributes: true, AttributeQuote: `"`})
	} else {
		tree = parse.BuildTree("["+name+"]", parse.Options{Defs: pdefs, StrictAttributes: true, DirectAttributes: true, AttributeQuote: `"`})
	}
	tag := tree.Root[0].(*parse.Tag)
	return tag
}

func TestRenderTemplateLiteralPercent(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("x", "", nil)
	got := e.renderTemplate("100%% done", tag, "")
	assert.Equal(t, "100% done", got)
}

func TestRenderTemplateBareS(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("x", "", nil)
	got := e.renderTemplate("[%s]", tag, "rendered")
	assert.Equal(t, "[rendered]", got)
}

func TestRenderTemplateSHTMLQualifier(t *testing.T) {
	pdefs := simpleParseDefs{"code": {Class: parse.ClassInline, Classic: true, ParseContent: false}}
	tree := parse.BuildTree("[code]<b>[/code]", parse.Options{Defs: pdefs, StrictAttributes: true, DirectAttributes: true, AttributeQuote: `"`})
	tag := tree.Root[0].(*parse.Tag)
	e := newTemplateEngine()
	got := e.renderTemplate("%{html}s", tag, "should not be used")
	assert.Equal(t, "&lt;b&gt;", got)
}

func TestRenderTemplateSNoescapeQualifier(t *testing.T) {
	pdefs := simpleParseDefs{"code": {Class: parse.ClassInline, Classic: true, ParseContent: false}}
	tree := parse.BuildTree("[code]<b>[/code]", parse.Options{Defs: pdefs, StrictAttributes: true, DirectAttributes: true, AttributeQuote: `"`})
	tag := tree.Root[0].(*parse.Tag)
	e := newTemplateEngine()
	got := e.renderTemplate("%{noescape}s", tag, "should not be used")
	assert.Equal(t, "<b>", got)
}

func TestRenderTemplateAEscapesFallback(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("color", `<b>`, nil)
	got := e.renderTemplate("%a", tag, "")
	assert.Equal(t, "&lt;b&gt;", got)
}

func TestRenderTemplateANamedQualifier(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("size", "12", nil)
	got := e.renderTemplate("%{num}a", tag, "")
	assert.Equal(t, "12", got)
}

func TestRenderTemplateANamedQualifierRejectsNonMatching(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("size", "notanumber", nil)
	got := e.renderTemplate("%{num}a", tag, "")
	assert.Equal(t, "", got)
}

func TestRenderTemplateCapitalAFallsBackToContent(t *testing.T) {
	pdefs := simpleParseDefs{"url": {Class: parse.ClassURL, Classic: true, ParseContent: true}}
	tree := parse.BuildTree("[url]http://example.com[/url]", parse.Options{Defs: pdefs, StrictAttributes: true, DirectAttributes: true, AttributeQuote: `"`})
	tag := tree.Root[0].(*parse.Tag)
	e := newTemplateEngine()
	got := e.renderTemplate("%A", tag, "")
	assert.Equal(t, "http://example.com", got)
}

func TestRenderTemplateCapitalAPrefersFallback(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("url", "http://example.com", nil)
	got := e.renderTemplate("%A", tag, "")
	assert.Equal(t, "http://example.com", got)
}

func TestRenderTemplateUnrecognizedVerbIsLiteral(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("x", "", nil)
	got := e.renderTemplate("%z rest", tag, "")
	assert.Equal(t, "%z rest", got)
}

func TestRenderTemplateUnterminatedQualifierIsLiteral(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("x", "", nil)
	got := e.renderTemplate("%{unterminated", tag, "")
	assert.Equal(t, "%{unterminated", got)
}

func TestRenderTemplateTrailingPercent(t *testing.T) {
	e := newTemplateEngine()
	tag := tagWithFallback("x", "", nil)
	got := e.renderTemplate("trailing%", tag, "")
	assert.Equal(t, "trailing%", got)
}
