package parse

import "strings"

// AttrResult is the outcome of parsing a tag's attribute region (C2).
type AttrResult struct {
	Valid  bool
	Attrs  []Attr
	Raw    string // the exact source text of the attribute region, not including the name or the closing "]"
	Closer string // "]" on a well-formed close, "" if EOF was hit first
}

// AttrOptions configures the attribute sub-grammar's two dialects.
type AttrOptions struct {
	Direct bool   // true: "[tag=val key=val]"; false: "[tag key=val]" (no fallback)
	Quotes string // accepted quote characters, e.g. `"`, `'`, or `"'`
}

// AttrParser is the pluggable entry point for the attribute sub-grammar,
// invoked immediately after the tag name has been consumed. Its cursor
// argument is of the unexported lexer type, so a new AttrParser can only
// be written inside this package; other packages can pass ParseAttrs or
// leave the option nil.
type AttrParser func(l *lexer, tagName string, opts AttrOptions) AttrResult

// ParseAttrs is the default AttrParser, implementing the direct
// ("[tag=val key=val]") and indirect ("[tag key=val]", no fallback)
// attribute dialects.
func ParseAttrs(l *lexer, tagName string, opts AttrOptions) AttrResult {
	start := l.pos
	attrs := []Attr{{Key: "", Value: ""}}

	fail := func() AttrResult {
		raw := skipToCloseBracket(l, start)
		closer := ""
		if l.current() == ']' {
			l.next()
			closer = "]"
		}
		return AttrResult{Valid: false, Attrs: []Attr{{Key: "", Value: ""}}, Raw: raw, Closer: closer}
	}

	if opts.Direct && l.current() == '=' {
		l.next()
		val, ok := readValue(l, opts.Quotes)
		if !ok {
			return fail()
		}
		attrs[0].Value = val
	}

	for {
		before := l.pos
		skipSpace(l)
		switch {
		case l.current() == ']':
			l.next()
			return AttrResult{Valid: true, Attrs: attrs, Raw: l.input[start : l.pos-1], Closer: "]"}
		case l.atEOF():
			return fail()
		case isKeyStart(l.current()) && l.pos > before:
			key, ok := readKey(l)
			if !ok || l.current() != '=' {
				return fail()
			}
			l.next() // consume '='
			val, ok := readValue(l, opts.Quotes)
			if !ok {
				return fail()
			}
			attrs = append(attrs, Attr{Key: key, Value: val})
		default:
			return fail()
		}
	}
}

func skipSpace(l *lexer) {
	for isSpace(l.current()) {
		l.next()
	}
}

func isKeyStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

// isTagNameStart additionally accepts "*", the conventional forum
// shorthand for a list-item tag ("[*]"), which is otherwise not a valid
// identifier start. Attribute keys (readKey above) use isKeyStart
// directly and do not get this allowance.
func isTagNameStart(b byte) bool {
	return isKeyStart(b) || b == '*'
}

// readKey consumes [A-Za-z_][A-Za-z0-9_-]* and requires at least one
// leading whitespace byte to have preceded it (the caller already
// skipped it); it fails if the cursor isn't on a valid key start.
func readKey(l *lexer) (string, bool) {
	start := l.pos
	if !isKeyStart(l.current()) {
		return "", false
	}
	l.next()
	for isNameByte(l.current()) {
		l.next()
	}
	return l.input[start:l.pos], true
}

// readValue consumes either a quoted value (surrounded by one of the
// accepted quote characters, no escape mechanism, may contain the
// opposite quote character and spaces) or an unquoted greedy run of
// non-space, non-"]" bytes.
func readValue(l *lexer, quotes string) (string, bool) {
	if quotes != "" && strings.IndexByte(quotes, l.current()) >= 0 {
		quote := l.current()
		l.next()
		start := l.pos
		for {
			if l.atEOF() {
				return "", false
			}
			if l.current() == quote {
				val := l.input[start:l.pos]
				l.next()
				return val, true
			}
			l.next()
		}
	}
	start := l.pos
	for !l.atEOF() && !isSpace(l.current()) && l.current() != ']' {
		l.next()
	}
	if l.pos == start {
		return "", false
	}
	return l.input[start:l.pos], true
}

// skipToCloseBracket advances the cursor to the next "]" (not consuming
// it) or to EOF, and returns the skipped text starting from start.
func skipToCloseBracket(l *lexer, start Pos) string {
	for !l.atEOF() && l.current() != ']' {
		l.next()
	}
	return l.input[start:l.pos]
}
