package render

import (
	"strings"

	"github.com/gobbcode/bbcode/escape"
	"github.com/gobbcode/bbcode/parse"
	"github.com/gobbcode/bbcode/textproc"
)

// Engine renders a parse.Tree to a string. It holds no state across
// calls; every field is read-only configuration shared with the owning
// Parser, so an Engine may be reused for any number of renders.
type Engine struct {
	Defs              Definitions
	Escapes           *escape.Registry
	Text              *textproc.Pipeline
	UserTextProcessor func(string) string
	Parser            Parser
}

// Render walks tree's root nodes and returns the rendered string.
func (e *Engine) Render(tree *parse.Tree) string {
	a := newAncestry()
	return e.renderNodes(tree.Root, a)
}

// ancestry is the mutable, stack-shaped bookkeeping pushed/popped as the
// walk descends into and out of tags; a.snapshot() freezes it into the
// Info a callback or the URL-finder suppression check observes.
type ancestry struct {
	tags               map[string]int
	stack              []string
	classes            map[parse.Class]int
	processingDisabled bool
}

func newAncestry() *ancestry {
	return &ancestry{tags: map[string]int{}, classes: map[parse.Class]int{}}
}

func (a *ancestry) push(name string, class parse.Class) {
	a.tags[name]++
	a.classes[class]++
	a.stack = append(a.stack, name)
}

func (a *ancestry) pop(name string, class parse.Class) {
	a.tags[name]--
	a.classes[class]--
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *ancestry) urlDepth() int { return a.classes[parse.ClassURL] }

func (a *ancestry) snapshot() Info {
	tags := make(map[string]int, len(a.tags))
	for k, v := range a.tags {
		tags[k] = v
	}
	classes := make(map[parse.Class]int, len(a.classes))
	for k, v := range a.classes {
		classes[k] = v
	}
	return Info{
		Tags:    tags,
		Stack:   append([]string(nil), a.stack...),
		Classes: classes,
	}
}

func (e *Engine) renderNodes(nodes []parse.Node, a *ancestry) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(e.renderNode(n, a))
	}
	return b.String()
}

func (e *Engine) renderNode(n parse.Node, a *ancestry) string {
	switch t := n.(type) {
	case *parse.TextNode:
		return e.renderText(t.Text, a)
	case *parse.Tag:
		return e.renderTag(t, a)
	}
	return ""
}

// renderText runs the text processor pipeline, or the plain HTML escape
// when the enclosing tag's definition set parse=false: the pipeline
// never runs inside a noparse tag's content.
func (e *Engine) renderText(text string, a *ancestry) string {
	if a.processingDisabled {
		return e.Escapes.Run("html", text)
	}
	if def, ok := e.Defs.Resolve(""); ok {
		if cb, isCb := def.Output().(Callback); isCb {
			return cb(&Context{Parser: e.Parser, Content: text, Info: a.snapshot()})
		}
	}
	suppressURL := a.urlDepth() > 0
	if e.UserTextProcessor != nil {
		return e.Text.RunWithUserProcessor(text, e.UserTextProcessor, suppressURL)
	}
	return e.Text.Run(text, suppressURL)
}

// renderTag dispatches on whether t survived parsing intact. An
// unclosed or unknown tag is rendered transparently regardless of
// whether a Definition exists for its name.
func (e *Engine) renderTag(t *parse.Tag, a *ancestry) string {
	if !t.Closed() || t.Unknown() {
		return e.renderTransparent(t, a)
	}
	def, ok := e.Defs.Resolve(t.Name())
	if !ok {
		return e.renderTransparent(t, a)
	}

	a.push(t.Name(), t.Class())
	content := e.renderChildren(t, a, def)
	a.pop(t.Name(), t.Class())

	switch out := def.Output().(type) {
	case Callback:
		if !def.ParseContent() {
			content = t.Content()
		}
		return out(&Context{
			Parser:   e.Parser,
			Attr:     t.Fallback(),
			Content:  content,
			Fallback: t.Fallback(),
			Tag:      t,
			Info:     a.snapshot(),
		})
	case Template:
		return e.renderTemplate(string(out), t, content)
	}
	return content
}

// renderTransparent reproduces a tag's original delimiters verbatim
// around its recursively rendered children: the "closed=false and no
// auto-close" case. Auto-closed tags (closed=true but synthesized) are
// NOT transparent: they fall through to the normal renderTag path above,
// using whatever Definition exists for their name.
func (e *Engine) renderTransparent(t *parse.Tag, a *ancestry) string {
	a.push(t.Name(), t.Class())
	content := e.renderChildrenRaw(t, a)
	a.pop(t.Name(), t.Class())

	var b strings.Builder
	b.WriteString(t.StartDelim())
	b.WriteString(t.AttrRaw())
	b.WriteString(content)
	b.WriteString(t.EndDelim())
	return b.String()
}

// renderChildren renders t's children under def's parse-content policy,
// applying the strip_linebreaks trim markers set at parse time.
func (e *Engine) renderChildren(t *parse.Tag, a *ancestry, def Definition) string {
	if !def.ParseContent() {
		prev := a.processingDisabled
		a.processingDisabled = true
		out := e.renderChildNodes(t, a)
		a.processingDisabled = prev
		return out
	}
	return e.renderChildNodes(t, a)
}

// renderChildrenRaw is renderChildren for a transparent (unknown/
// unclosed) tag, which has no Definition to consult for parse-content
// policy — its children were parsed normally by the tree builder (an
// unknown tag's content is always parsed), so they render the same way.
func (e *Engine) renderChildrenRaw(t *parse.Tag, a *ancestry) string {
	return e.renderChildNodes(t, a)
}

func (e *Engine) renderChildNodes(t *parse.Tag, a *ancestry) string {
	nodes := t.Children()
	if len(nodes) == 0 {
		return ""
	}
	var b strings.Builder
	last := len(nodes) - 1
	for i, n := range nodes {
		tn, ok := n.(*parse.TextNode)
		if !ok {
			b.WriteString(e.renderNode(n, a))
			continue
		}
		text := tn.Text
		if i == 0 && t.TrimLeadingNL() && strings.HasPrefix(text, "\n") {
			text = text[1:]
		}
		if i == last && t.TrimTrailingNL() && strings.HasSuffix(text, "\n") {
			text = text[:len(text)-1]
		}
		b.WriteString(e.renderText(text, a))
	}
	return b.String()
}
