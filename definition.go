package bbcode

import (
	"strings"

	"github.com/gobbcode/bbcode/parse"
	"github.com/gobbcode/bbcode/render"
)

// urlSugarPrefix is a tag-definition shorthand: a template beginning
// with "url:" is stripped of that prefix and its tag is automatically
// treated as class=url, regardless of the Definition's own Class field.
const urlSugarPrefix = "url:"

// Output, Template, Callback, and Context are re-exported from the render
// package so callers building a Definition literal never need to import
// render directly.
type (
	Output   = render.Output
	Template = render.Template
	Callback = render.Callback
	Context  = render.Context
)

// Definition describes one tag: its nesting class, its shape (single/
// short/classic), whether its content is parsed as BBCode, and how it
// renders. It is a plain data record — Class/Single/Short/Classic/
// ParseContent feed parse.TagSpec for the scanner, and Output feeds the
// render engine — rather than a type with its own Output()/Class()/
// ParseContent() methods, so its field names stay readable without
// colliding with the render.Definition interface those methods belong to
// (see defAdapter in bbcode.go).
type Definition struct {
	Class Class // defaults to ClassInline if unset

	Single bool // self-closing, no content and no close tag

	Short bool // accepts "[name://body|title]"

	// Classic defaults to true (classic "[name=...]...[/name]" form is
	// accepted). Set to Bool(false) to accept only the short form.
	Classic *bool

	// ParseContent defaults to true for a Template Output, false for a
	// Callback Output (a callback is handed the raw, unparsed content and
	// decides for itself whether/how to render it). Set explicitly to
	// override either default, e.g. Bool(false) for a verbatim/noparse
	// Template tag such as [code], or Bool(true) for a Callback tag that
	// wants its content parsed before ctx.Content reaches it.
	ParseContent *bool

	Output Output
}

// Class is a tag's nesting class: inline (default), block, or url.
type Class = parse.Class

const (
	ClassInline = parse.ClassInline
	ClassBlock  = parse.ClassBlock
	ClassURL    = parse.ClassURL
)

func (d Definition) classOrDefault() parse.Class {
	if tmpl, ok := d.Output.(Template); ok && strings.HasPrefix(string(tmpl), urlSugarPrefix) {
		return ClassURL
	}
	if d.Class == "" {
		return ClassInline
	}
	return d.Class
}

// resolvedOutput strips the url: sugar prefix, if present, from a
// Template's text before it reaches the render engine.
func (d Definition) resolvedOutput() render.Output {
	if tmpl, ok := d.Output.(Template); ok {
		if rest, found := strings.CutPrefix(string(tmpl), urlSugarPrefix); found {
			return Template(rest)
		}
	}
	return d.Output
}

func (d Definition) classicOrDefault() bool {
	return boolDefault(d.Classic, true)
}

func (d Definition) parseContentOrDefault() bool {
	if d.ParseContent != nil {
		return *d.ParseContent
	}
	_, isCallback := d.Output.(Callback)
	return !isCallback
}

// defAdapter satisfies render.Definition by reading a Definition's
// fields; Definition itself carries no methods of that name; see the
// Definition doc comment for why.
type defAdapter struct{ d Definition }

func (a defAdapter) Output() render.Output { return a.d.resolvedOutput() }
func (a defAdapter) Class() parse.Class    { return a.d.classOrDefault() }
func (a defAdapter) ParseContent() bool    { return a.d.parseContentOrDefault() }
