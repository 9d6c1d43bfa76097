// Package escape implements the named string filters used by the render
// engine's interpolation directives and by the text processor pipeline.
// Every escape is a pure function: same input, same output, no side
// effects on the caller's data.
package escape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Func is a single named escape: a pure string-to-string transform.
type Func func(string) string

// Registry is an instance-scoped set of named escapes. It is never a
// package global: each Parser owns one, so two parsers in the same process
// can register different overrides without racing each other.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a Registry seeded with the built-in escapes, with
// overrides merged on top (an override may replace a built-in name or add
// a new one).
func NewRegistry(overrides map[string]Func) *Registry {
	r := &Registry{funcs: make(map[string]Func, len(defaults)+len(overrides))}
	for name, fn := range defaults {
		r.funcs[name] = fn
	}
	for name, fn := range overrides {
		r.funcs[name] = fn
	}
	return r
}

// Run applies the named escape to s. An unknown name silently falls back
// to the "html" escape, per the render engine's directive contract.
func (r *Registry) Run(name, s string) string {
	if fn, ok := r.funcs[name]; ok {
		return fn(s)
	}
	return r.funcs["html"](s)
}

// Has reports whether name is a registered escape.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

var defaults = map[string]Func{
	"html":      HTML,
	"uri":       URI,
	"link":      Link,
	"email":     Email,
	"htmlcolor": HTMLColor,
	"num":       Num,
	"noescape":  NoEscape,
}

// HTML entity-escapes < > & " '. Delegated to golang.org/x/net/html rather
// than a hand-rolled replacer so the quirkier entities (') come out the
// way browsers expect without a bespoke table to maintain.
func HTML(s string) string {
	return html.EscapeString(s)
}

// isUnreserved reports whether b is in the RFC 3986 unreserved set that
// must never be percent-encoded: ALPHA / DIGIT / "-" / "." / "_" / "~".
func isUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	}
	return false
}

const hexDigits = "0123456789ABCDEF"

// URI percent-encodes per the RFC 3986 unreserved set, then HTML-escapes
// the result (so it is safe both as a URI component and inside an HTML
// attribute). Encoding is done byte-by-byte rather than via
// url.QueryEscape, which encodes a space as "+" per form-urlencoding
// rules rather than "%20" as RFC 3986 percent-encoding requires.
func URI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xf])
	}
	return HTML(b.String())
}

var linkPattern = regexp.MustCompile(`^(/|[A-Za-z][A-Za-z0-9+.\-]*://)`)

// Link HTML-escapes s if it looks like an absolute path or a scheme://
// URL, otherwise returns the empty string.
func Link(s string) string {
	if linkPattern.MatchString(s) {
		return HTML(s)
	}
	return ""
}

// emailPattern is intentionally permissive: it is a gate against obvious
// garbage, not an RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email HTML-escapes s if it looks like an email address, otherwise
// returns the empty string.
func Email(s string) string {
	if emailPattern.MatchString(s) {
		return HTML(s)
	}
	return ""
}

var hexColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

var namedColors = map[string]bool{
	"black": true, "silver": true, "gray": true, "grey": true, "white": true,
	"maroon": true, "red": true, "purple": true, "fuchsia": true,
	"green": true, "lime": true, "olive": true, "yellow": true,
	"navy": true, "blue": true, "teal": true, "aqua": true, "orange": true,
}

// HTMLColor HTML-escapes s if it is a "#" + 3-or-6-hex-digit color or a
// recognized CSS color keyword, otherwise returns the empty string.
func HTMLColor(s string) string {
	if hexColorPattern.MatchString(s) || namedColors[strings.ToLower(s)] {
		return HTML(s)
	}
	return ""
}

var numPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Num returns s unmodified if it is an integer or decimal literal,
// otherwise the empty string.
func Num(s string) string {
	if numPattern.MatchString(s) {
		return s
	}
	return ""
}

// NoEscape returns s unmodified. Used for trusted, already-safe content.
func NoEscape(s string) string {
	return s
}
