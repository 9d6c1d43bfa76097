// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// This code is based on code originally written by The Go Authors.
// Their copyright notice immediately follows this one.

// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "strings"

// itemType classifies the coarse-grained lexical units the scanner hands
// to the tree builder. Fine-grained tag/attribute structure is recognized
// directly by the tree builder (tree.go) and the attribute sub-parser
// (attr.go), which need definition-table lookups the lexer itself has no
// business knowing about.
type itemType int

const (
	itemText itemType = iota
	itemEOF
)

// item is a single lexed unit: its type, its byte position, and its text.
type item struct {
	typ   itemType
	pos   Pos
	value string
}

// eof is the byte current, at, and next return past the end of input;
// atEOF tells it apart from a NUL byte in the input itself.
const eof byte = 0

// lexer is an explicit byte-index cursor over the input. It does not run
// as a goroutine feeding a channel: BBCode scanning has no suspension
// points, so a synchronous cursor the tree builder drives directly is
// the right shape.
type lexer struct {
	input string
	pos   Pos // current position
	start Pos // start of the pending item
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// current returns the byte at pos without consuming it, or eof.
func (l *lexer) current() byte {
	if int(l.pos) >= len(l.input) {
		return eof
	}
	return l.input[l.pos]
}

// at returns the byte at pos+n (n may be negative), or eof.
func (l *lexer) at(n int) byte {
	p := int(l.pos) + n
	if p < 0 || p >= len(l.input) {
		return eof
	}
	return l.input[p]
}

// hasPrefix reports whether the unconsumed input starts with s.
func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// next consumes and returns the next byte, or eof without advancing
// further once input is exhausted.
func (l *lexer) next() byte {
	if int(l.pos) >= len(l.input) {
		return eof
	}
	b := l.input[l.pos]
	l.pos++
	return b
}

// backup moves the cursor back one byte. Safe to call at most once per
// next call.
func (l *lexer) backup() {
	if l.pos > 0 {
		l.pos--
	}
}

// ignore discards the pending item by moving start up to pos.
func (l *lexer) ignore() {
	l.start = l.pos
}

// emitText returns an itemText item for everything since the last emit
// and advances start to pos. Returns ok=false if there is nothing pending.
func (l *lexer) emitText() (item, bool) {
	if l.pos <= l.start {
		return item{}, false
	}
	it := item{typ: itemText, pos: l.start, value: l.input[l.start:l.pos]}
	l.start = l.pos
	return it, true
}

// atEOF reports whether the cursor has consumed all input.
func (l *lexer) atEOF() bool {
	return int(l.pos) >= len(l.input)
}

// nextText scans forward from the current position until the next '['
// or end of input, without consuming a trailing '['. It returns the
// text item covering that run, or ok=false if the cursor is already at
// '[' or EOF with nothing pending.
func (l *lexer) nextText() (item, bool) {
	l.ignore()
	for !l.atEOF() && l.current() != '[' {
		l.pos++
	}
	return l.emitText()
}

// isSpace reports whether b is BBCode whitespace (space or tab).
func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// isAlpha reports whether b is an ASCII letter.
func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isNameByte reports whether b may appear in a tag name (ASCII
// identifier characters; the first byte is additionally required by the
// caller to be a letter, an underscore, or, for tag names only, "*").
func isNameByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_' || b == '-'
}
