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

// Tree is the result of scanning one document: its root node list, plus
// the names of any tags that were left unparsed or auto-closed while
// recovering from unbalanced or misnested input.
type Tree struct {
	Root   []Node
	Errors []string
}

// RawText reconstructs the tree's root-level nodes back into the
// original source text. parser.Parse(s).RawText() == s for any s.
func (t *Tree) RawText() string {
	var b strings.Builder
	for _, n := range t.Root {
		b.WriteString(n.RawText())
	}
	return b.String()
}

// frame is one entry of the open-tag stack. tag == nil represents the
// tree root, which has no name, class, or attributes of its own.
type frame struct {
	tag  *Tag
	spec TagSpec
}

// builder holds the mutable state of a single scan: the cursor, the
// open-tag stack, the error list, and per-name occurrence counters. It
// drives the cursor directly through a per-character loop rather than
// pulling tokens off a channel.
type builder struct {
	lex    *lexer
	opts   Options
	stack  []*frame
	root   []Node
	errors []string
	counts map[string]int
}

// BuildTree runs the single-pass scanner and tree builder over input.
func BuildTree(input string, opts Options) *Tree {
	b := &builder{
		lex:    newLexer(input),
		opts:   opts,
		stack:  []*frame{{tag: nil}},
		counts: make(map[string]int),
	}
	b.run()
	b.finish()
	return &Tree{Root: b.root, Errors: b.errors}
}

func (b *builder) top() *frame { return b.stack[len(b.stack)-1] }

// append adds n as the next child of f (or to the tree root if f is the
// root frame).
func (b *builder) append(f *frame, n Node) {
	if f.tag == nil {
		b.root = append(b.root, n)
		return
	}
	f.tag.children = append(f.tag.children, n)
}

func (b *builder) nextNum(name string) int {
	n := b.counts[name]
	b.counts[name] = n + 1
	return n
}

// run drives the scanner's per-character loop: consume text up to the
// next "[", then try to recognize a close tag, an open tag, or fall back
// to a single literal "[" byte.
func (b *builder) run() {
	for {
		if it, ok := b.lex.nextText(); ok {
			b.append(b.top(), newText(it.pos, it.value))
		}
		if b.lex.atEOF() {
			return
		}
		if b.lex.hasPrefix("[/") {
			b.closeTag()
			continue
		}
		if !b.tryOpen() {
			pos := b.lex.pos
			b.lex.next()
			b.append(b.top(), newText(pos, "["))
		}
	}
}

// tryOpen attempts to recognize and consume a classic or short open tag
// starting at the current '['. It returns false only when the bytes
// after '[' cannot start any tag at all, in which case the cursor is
// left untouched and the caller emits '[' as a single literal byte.
func (b *builder) tryOpen() bool {
	save := b.lex.pos
	tagStart := save
	b.lex.pos++ // consume '['
	if !isTagNameStart(b.lex.current()) {
		b.lex.pos = save
		return false
	}
	nameStart := b.lex.pos
	b.lex.pos++
	for isNameByte(b.lex.current()) {
		b.lex.pos++
	}
	name := b.lex.input[nameStart:b.lex.pos]
	afterName := b.lex.pos
	spec, known := b.opts.lookup(name)

	if b.lex.hasPrefix("://") && known && spec.Short {
		if b.tryShort(tagStart, name, spec) {
			return true
		}
		// Malformed short tag (no closing "]"): fall back to parsing it
		// as a classic tag from right after the name, same as any other
		// tag whose scheme marker just happens not to apply.
		b.lex.pos = afterName
	}
	return b.openClassic(tagStart, name, spec, known)
}

// tryShort parses "://body" or "://body|title]" once the scheme marker
// has been confirmed present. It returns false if no closing "]" exists
// anywhere in the remaining input, leaving the cursor untouched.
func (b *builder) tryShort(tagStart Pos, name string, spec TagSpec) bool {
	afterName := b.lex.pos
	schemeStart := afterName + 3
	closeRel := strings.IndexByte(b.lex.input[schemeStart:], ']')
	if closeRel < 0 {
		return false
	}
	closeIdx := schemeStart + Pos(closeRel)
	pipeRel := strings.IndexByte(b.lex.input[schemeStart:closeIdx], '|')
	var body, title string
	if pipeRel >= 0 {
		pipeIdx := schemeStart + Pos(pipeRel)
		body = b.lex.input[schemeStart:pipeIdx]
		title = b.lex.input[pipeIdx+1 : closeIdx]
	} else {
		body = b.lex.input[schemeStart:closeIdx]
	}
	b.lex.pos = closeIdx + 1 // consume ']'
	fullRaw := b.lex.input[tagStart:b.lex.pos]

	refuse, autoClose := b.checkNesting(spec.Class)
	if refuse {
		b.append(b.top(), newText(tagStart, fullRaw))
		return true
	}
	b.autoCloseN(autoClose)

	content := title
	if content == "" {
		content = body
	}
	tag := newTag(tagStart, name)
	tag.short = true
	tag.shortRaw = fullRaw
	tag.class = spec.Class
	tag.closed = true
	tag.attrs[0].Value = body
	tag.num = b.nextNum(name)
	if spec.ParseContent {
		sub := BuildTree(content, b.opts)
		tag.children = sub.Root
		b.errors = append(b.errors, sub.Errors...)
	} else {
		tag.children = []Node{newText(0, content)}
	}
	b.append(b.top(), tag)
	return true
}

// openClassic parses "[name=?attrs]" once the name has been scanned. It
// always consumes at least up to the attribute parser's failure point or
// its matching "]"; it never leaves the cursor short of that, since the
// attribute parser itself guarantees forward progress.
func (b *builder) openClassic(tagStart Pos, name string, spec TagSpec, known bool) bool {
	res := b.opts.parser()(b.lex, name, b.opts.attrOptions())

	if !res.Valid && b.opts.StrictAttributes {
		raw := b.lex.input[tagStart:b.lex.pos]
		b.append(b.top(), newText(tagStart, raw))
		return true
	}

	classicDisallowed := known && !spec.Classic
	unknown := !known || classicDisallowed

	effClass := ClassInline
	parseContent := true
	single := false
	if known {
		effClass = spec.Class
		parseContent = spec.ParseContent
		single = spec.Single
	}

	refuse, autoClose := b.checkNesting(effClass)
	if refuse {
		raw := b.lex.input[tagStart:b.lex.pos]
		b.append(b.top(), newText(tagStart, raw))
		return true
	}
	b.autoCloseN(autoClose)

	attrRaw := name + res.Raw + res.Closer

	if known && single {
		tag := newTag(tagStart, name)
		tag.attrs = res.Attrs
		tag.attrRaw = attrRaw
		tag.startDelim = "["
		tag.endDelim = ""
		tag.closed = true
		tag.single = true
		tag.class = effClass
		tag.unknown = unknown
		tag.num = b.nextNum(name)
		b.append(b.top(), tag)
		return true
	}

	if known && !parseContent {
		closer := "[/" + name + "]"
		idx := strings.Index(b.lex.input[b.lex.pos:], closer)
		tag := newTag(tagStart, name)
		tag.attrs = res.Attrs
		tag.attrRaw = attrRaw
		tag.startDelim = "["
		tag.class = effClass
		tag.unknown = unknown
		tag.num = b.nextNum(name)
		if idx < 0 {
			content := b.lex.input[b.lex.pos:]
			tag.children = []Node{newText(b.lex.pos, content)}
			b.lex.pos = Pos(len(b.lex.input))
			tag.closed = false
			tag.endDelim = ""
			b.errors = append(b.errors, name)
		} else {
			contentStart := b.lex.pos
			absIdx := contentStart + Pos(idx)
			content := b.lex.input[contentStart:absIdx]
			tag.children = []Node{newText(contentStart, content)}
			b.lex.pos = absIdx + Pos(len(closer))
			tag.closed = true
			tag.endDelim = closer
		}
		b.append(b.top(), tag)
		return true
	}

	tag := newTag(tagStart, name)
	tag.attrs = res.Attrs
	tag.attrRaw = attrRaw
	tag.startDelim = "["
	tag.class = effClass
	tag.unknown = unknown
	tag.num = b.nextNum(name)
	b.append(b.top(), tag)
	b.stack = append(b.stack, &frame{tag: tag, spec: TagSpec{Class: effClass, ParseContent: true}})
	return true
}

// closeTag handles a "[/" sequence: a well-formed "[/name]", a malformed
// close (treated as a literal '['), or a well-formed close that matches
// nothing, or a deeper frame, on the open-tag stack.
func (b *builder) closeTag() {
	save := b.lex.pos
	b.lex.pos += 2 // consume "[/"
	if !isTagNameStart(b.lex.current()) {
		b.lex.pos = save + 1
		b.append(b.top(), newText(save, "["))
		return
	}
	nameStart := b.lex.pos
	b.lex.pos++
	for isNameByte(b.lex.current()) {
		b.lex.pos++
	}
	name := b.lex.input[nameStart:b.lex.pos]
	if b.lex.current() != ']' {
		b.lex.pos = save + 1
		b.append(b.top(), newText(save, "["))
		return
	}
	b.lex.pos++ // consume ']'
	closerRaw := b.lex.input[save:b.lex.pos]

	idx := -1
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].tag.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.append(b.top(), newText(save, closerRaw))
		return
	}
	if idx == len(b.stack)-1 {
		b.closeFrame(b.stack[idx], closerRaw)
		b.stack = b.stack[:idx]
		return
	}
	if !b.opts.CloseOpenTags {
		b.append(b.top(), newText(save, closerRaw))
		return
	}
	for len(b.stack)-1 > idx {
		f := b.stack[len(b.stack)-1]
		b.closeFrame(f, "")
		b.errors = append(b.errors, f.tag.name)
		b.stack = b.stack[:len(b.stack)-1]
	}
	b.closeFrame(b.stack[idx], closerRaw)
	b.stack = b.stack[:idx]
}

// closeFrame finalizes a tag frame's closed/endDelim fields and applies
// the strip_linebreaks trim markers if configured.
func (b *builder) closeFrame(f *frame, endDelim string) {
	f.tag.closed = true
	f.tag.endDelim = endDelim
	if b.opts.StripLinebreaks && f.tag.class == ClassBlock {
		markStripLinebreaks(f.tag)
	}
}

// markStripLinebreaks records (without mutating the underlying text, so
// RawText()/round-trip stays exact) that this block tag's rendered
// content should drop a single leading newline right after its open
// delimiter and a single trailing newline right before its close
// delimiter.
func markStripLinebreaks(t *Tag) {
	if len(t.children) == 0 {
		return
	}
	if tn, ok := t.children[0].(*TextNode); ok && strings.HasPrefix(tn.Text, "\n") {
		t.trimLeadingNL = true
	}
	if tn, ok := t.children[len(t.children)-1].(*TextNode); ok && strings.HasSuffix(tn.Text, "\n") {
		t.trimTrailingNL = true
	}
}

// checkNesting applies the block/inline/url nesting policy for a tag
// about to be opened with the given class. refuse reports whether the
// open must be rejected outright (url-in-url, or block-in-inline with
// close_open_tags=false); autoClose is the number of frames at the top
// of the stack that must be synthetically closed first (block-in-inline
// with close_open_tags=true).
func (b *builder) checkNesting(class Class) (refuse bool, autoClose int) {
	switch class {
	case ClassURL:
		for _, f := range b.stack {
			if f.tag != nil && f.spec.Class == ClassURL {
				return true, 0
			}
		}
	case ClassBlock:
		n := 0
		for i := len(b.stack) - 1; i >= 0; i-- {
			f := b.stack[i]
			if f.tag == nil || f.spec.Class != ClassInline {
				break
			}
			n++
		}
		if n > 0 {
			if b.opts.CloseOpenTags {
				return false, n
			}
			return true, 0
		}
	}
	return false, 0
}

// autoCloseN synthetically closes the n innermost open frames (the
// inline run blocking a new block tag from opening), recording each as
// an error.
func (b *builder) autoCloseN(n int) {
	for i := 0; i < n; i++ {
		f := b.stack[len(b.stack)-1]
		b.closeFrame(f, "")
		b.errors = append(b.errors, f.tag.name)
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// finish closes any still-open frames at end of input, per the
// close_open_tags policy.
func (b *builder) finish() {
	for len(b.stack) > 1 {
		f := b.stack[len(b.stack)-1]
		if b.opts.CloseOpenTags {
			b.closeFrame(f, "")
		} else {
			f.tag.closed = false
			f.tag.endDelim = ""
		}
		b.errors = append(b.errors, f.tag.name)
		b.stack = b.stack[:len(b.stack)-1]
	}
}
