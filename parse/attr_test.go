package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAttrsAt(t *testing.T, input string, opts AttrOptions) (AttrResult, *lexer) {
	t.Helper()
	l := newLexer(input)
	res := ParseAttrs(l, "tag", opts)
	return res, l
}

func TestParseAttrsNoAttributes(t *testing.T) {
	res, _ := parseAttrsAt(t, "]rest", AttrOptions{Direct: true, Quotes: `"`})
	require.True(t, res.Valid)
	assert.Equal(t, "]", res.Closer)
	assert.Equal(t, "", res.Attrs[0].Value)
}

func TestParseAttrsDirectFallback(t *testing.T) {
	res, _ := parseAttrsAt(t, "=red]rest", AttrOptions{Direct: true, Quotes: `"`})
	require.True(t, res.Valid)
	assert.Equal(t, "red", res.Attrs[0].Value)
}

func TestParseAttrsIndirectFallbackDisabled(t *testing.T) {
	// Direct: false means "=" is not a fallback marker; it's simply not a
	// valid key-start byte, so parsing fails and falls back to the
	// skip-to-"]" recovery.
	res, _ := parseAttrsAt(t, "=red]rest", AttrOptions{Direct: false, Quotes: `"`})
	assert.False(t, res.Valid)
}

func TestParseAttrsKeyedQuoted(t *testing.T) {
	res, _ := parseAttrsAt(t, ` name="a b"]rest`, AttrOptions{Direct: true, Quotes: `"`})
	require.True(t, res.Valid)
	require.Len(t, res.Attrs, 2)
	assert.Equal(t, "name", res.Attrs[1].Key)
	assert.Equal(t, "a b", res.Attrs[1].Value)
}

func TestParseAttrsKeyedUnquoted(t *testing.T) {
	res, _ := parseAttrsAt(t, " key=val]rest", AttrOptions{Direct: true, Quotes: `"`})
	require.True(t, res.Valid)
	require.Len(t, res.Attrs, 2)
	assert.Equal(t, "val", res.Attrs[1].Value)
}

func TestParseAttrsMultipleQuoteChars(t *testing.T) {
	res, _ := parseAttrsAt(t, ` a='x' b="y"]`, AttrOptions{Direct: true, Quotes: `"'`})
	require.True(t, res.Valid)
	vals := map[string]string{}
	for _, a := range res.Attrs[1:] {
		vals[a.Key] = a.Value
	}
	assert.Equal(t, "x", vals["a"])
	assert.Equal(t, "y", vals["b"])
}

func TestParseAttrsUnterminatedQuoteFails(t *testing.T) {
	res, _ := parseAttrsAt(t, ` name="unterminated`, AttrOptions{Direct: true, Quotes: `"`})
	assert.False(t, res.Valid)
	assert.Equal(t, "", res.Closer)
}

func TestParseAttrsMissingCloseBracketSkipsToEOF(t *testing.T) {
	res, l := parseAttrsAt(t, " key=val no close here", AttrOptions{Direct: true, Quotes: `"`})
	assert.False(t, res.Valid)
	assert.True(t, l.atEOF())
}

func TestParseAttrsGarbageAfterValueFails(t *testing.T) {
	res, _ := parseAttrsAt(t, " key=val !bad]", AttrOptions{Direct: true, Quotes: `"`})
	assert.False(t, res.Valid)
}
