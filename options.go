package bbcode

import (
	"github.com/gobbcode/bbcode/escape"
	"github.com/gobbcode/bbcode/internal/logging"
	"github.com/gobbcode/bbcode/parse"
	"github.com/gobbcode/bbcode/textproc"
)

// Options configures a Parser. Bool returns a *bool for the tri-state
// fields that default to true, so a zero Options{} behaves sensibly
// without every caller having to spell out the defaults.
type Options struct {
	// Tags maps a tag name to its Definition. The empty name "" is a
	// pseudo-tag: if present with a Callback Output, it replaces the
	// entire text processor pipeline.
	Tags map[string]Definition

	// Escapes merges over the built-in named filters (escape.Registry);
	// an entry here may override a built-in name or add a new one.
	Escapes map[string]escape.Func

	CloseOpenTags bool // default false

	StrictAttributes *bool // default true
	DirectAttributes *bool // default true

	AttributeQuote string // "\"", "'", or both; default "\""

	AttributeParser parse.AttrParser // default parse.ParseAttrs

	URLFinder *textproc.URLFinder // nil disables; non-nil (even zero value) enables
	Smileys   *textproc.Smileys   // nil disables

	Linebreaks *bool // default true

	TextProcessor func(string) string // partial text-processor override; see textproc.Pipeline

	StripLinebreaks *bool // default true

	Logger logging.Logger // default logging.Disabled()
}

// Bool returns a pointer to b, for setting one of Options' or
// Definition's tri-state boolean fields away from its default.
func Bool(b bool) *bool { return &b }

func boolDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (o Options) quoteChars() string {
	if o.AttributeQuote == "" {
		return `"`
	}
	return o.AttributeQuote
}

func (o Options) attrParser() parse.AttrParser {
	if o.AttributeParser != nil {
		return o.AttributeParser
	}
	return parse.ParseAttrs
}
