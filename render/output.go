// Package render implements the render engine: a post-order walk of a
// parse.Tree that drives each tag's Output — a template string or a
// callback.
package render

import "github.com/gobbcode/bbcode/parse"

// Output is a tagged variant: a tag's definition carries either a
// Template or a Callback, never both. This replaces the "one value that
// might be a string or might be a function" shape a dynamically-typed
// host would use.
type Output interface {
	isOutput()
}

// Template is a format string interpreted by a small directive language:
// %s, %a, %A, %{name}s/a/A escape-qualified forms, and literal %%.
type Template string

func (Template) isOutput() {}

// Callback receives a *Context and returns the tag's rendered string.
// This collapses the six positional arguments a dynamically-typed host
// would pass (parser, fallback, content, fallback again, tag, info) into
// one struct.
type Callback func(*Context) string

func (Callback) isOutput() {}

// Parser is the minimal surface of the root package's *bbcode.Parser a
// callback may need (e.g. to escape a value or recursively render some
// other input). Defined here, not imported from bbcode, so bbcode can
// import render without a cycle; *bbcode.Parser satisfies this by
// structural typing.
type Parser interface {
	Escape(name, s string) string
}

// Info is strict-ancestry bookkeeping visible to a callback or reachable
// indirectly through %s's qualifiers: tag-name occurrence counts, the
// stack of ancestor tag names outermost-to-innermost, and nesting-class
// occurrence counts. It reflects ancestors only — the tag currently being
// rendered is not included in its own Info.
type Info struct {
	Tags    map[string]int
	Stack   []string
	Classes map[parse.Class]int
}

// Context is passed to a Callback in place of the six positional
// arguments a dynamically-typed host would otherwise pass separately.
type Context struct {
	Parser   Parser
	Attr     string // the fallback attribute value
	Content  string // rendered content if parse=true, else the raw unparsed content
	Fallback string // identical to Attr; kept distinct to mirror the tuple shape exactly
	Tag      *parse.Tag
	Info     Info
}

// Definition is the render-time view of a tag definition: just enough to
// drive C5, independent of how the root package represents the rest of a
// definition (attribute dialect, etc. live in parse.TagSpec instead).
type Definition interface {
	Output() Output
	Class() parse.Class
	ParseContent() bool
}

// Definitions resolves a tag name to its Definition. The root package's
// Options implements this (as Resolve, not Lookup, so the same type can
// also implement parse.Definitions without a method clash).
type Definitions interface {
	Resolve(name string) (Definition, bool)
}
