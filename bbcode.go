// Package bbcode parses forgiving, user-authored BBCode markup
// ([tag=attr key=val]content[/tag], short [tag://body|title] forms, and
// free text) into a navigable tree and renders it to a string — typically
// HTML — driven by a caller-supplied tag definition table.
//
// A Parser never fails on malformed input: unbalanced, misnested, or
// unrecognized markup degrades to literal text. The one place this
// package returns an error is New, for a caller-programming mistake in
// Options itself.
package bbcode

import (
	"fmt"
	"io"

	"github.com/gobbcode/bbcode/escape"
	"github.com/gobbcode/bbcode/internal/logging"
	"github.com/gobbcode/bbcode/parse"
	"github.com/gobbcode/bbcode/render"
	"github.com/gobbcode/bbcode/textproc"
)

// Parser holds one Options configuration's compiled state: the escape
// registry, the text processor pipeline, and the render engine. It is
// safe for sequential reuse across many Parse/Render calls; concurrent
// use requires one Parser per goroutine or external synchronization —
// this package does not add its own mutex.
type Parser struct {
	opts      Options
	escapes   *escape.Registry
	text      *textproc.Pipeline
	engine    *render.Engine
	forbidden map[string]bool
	logger    logging.Logger
	lastTree  *parse.Tree
}

// New validates opts and constructs a Parser. The only failure mode is a
// malformed Options value (an attribute_quote character that isn't `"`
// or `'`) — never anything about documents a Parser will later process.
func New(opts Options) (*Parser, error) {
	for i := 0; i < len(opts.AttributeQuote); i++ {
		c := opts.AttributeQuote[i]
		if c != '"' && c != '\'' {
			return nil, fmt.Errorf("bbcode: invalid attribute_quote character %q", c)
		}
	}

	p := &Parser{
		opts:      opts,
		escapes:   escape.NewRegistry(opts.Escapes),
		forbidden: make(map[string]bool),
		logger:    opts.Logger,
	}
	if p.logger == nil {
		p.logger = logging.Disabled()
	}
	p.text = &textproc.Pipeline{
		Smileys:    opts.Smileys,
		URLFinder:  opts.URLFinder,
		Linebreaks: boolDefault(opts.Linebreaks, true),
		Escape:     func(s string) string { return p.escapes.Run("html", s) },
	}
	p.engine = &render.Engine{
		Defs:              p,
		Escapes:           p.escapes,
		Text:              p.text,
		UserTextProcessor: opts.TextProcessor,
		Parser:            p,
	}
	return p, nil
}

// Lookup implements parse.Definitions: the scanner's view of a tag,
// shorn of its rendering Output. A forbidden name is reported as unknown,
// so Forbid degrades a tag to the same transparent handling as an
// undefined one.
func (p *Parser) Lookup(name string) (parse.TagSpec, bool) {
	if p.forbidden[name] {
		return parse.TagSpec{}, false
	}
	d, ok := p.opts.Tags[name]
	if !ok {
		return parse.TagSpec{}, false
	}
	return parse.TagSpec{
		Class:        d.classOrDefault(),
		Single:       d.Single,
		Short:        d.Short,
		Classic:      d.classicOrDefault(),
		ParseContent: d.parseContentOrDefault(),
	}, true
}

// Resolve implements render.Definitions: the render engine's view of a
// tag, including its Output. The "" pseudo-tag bypasses the Forbid check
// since it is never reachable as a scanned tag name in the first place.
func (p *Parser) Resolve(name string) (render.Definition, bool) {
	if name != "" && p.forbidden[name] {
		return nil, false
	}
	d, ok := p.opts.Tags[name]
	if !ok {
		return nil, false
	}
	return defAdapter{d}, true
}

// Escape implements render.Parser, letting a Callback reach the same
// named escapes the template interpreter uses.
func (p *Parser) Escape(name, s string) string {
	return p.escapes.Run(name, s)
}

// Parse scans input into a tree, applying this Parser's nesting,
// attribute-dialect, and balancing rules. The returned tree is also
// retained and returned by a later Tree() call; its Errors lists any tag
// names left unparsed or auto-closed, returned by a later Errors() call.
func (p *Parser) Parse(input string) (*parse.Tree, error) {
	tree := parse.BuildTree(input, parse.Options{
		Defs:             p,
		CloseOpenTags:    p.opts.CloseOpenTags,
		StrictAttributes: boolDefault(p.opts.StrictAttributes, true),
		DirectAttributes: boolDefault(p.opts.DirectAttributes, true),
		AttributeQuote:   p.opts.quoteChars(),
		AttrParser:       p.opts.attrParser(),
		StripLinebreaks:  boolDefault(p.opts.StripLinebreaks, true),
	})
	p.lastTree = tree
	if len(tree.Errors) > 0 {
		p.logger.Debugf("bbcode: %d tag(s) left unparsed or auto-closed: %v", len(tree.Errors), tree.Errors)
	}
	return tree, nil
}

// Render parses input and renders the result in one call.
func (p *Parser) Render(input string) (string, error) {
	tree, err := p.Parse(input)
	if err != nil {
		return "", err
	}
	return p.RenderTree(tree)
}

// RenderTree renders a tree previously produced by Parse (this Parser's
// own, or one built directly with the parse package).
func (p *Parser) RenderTree(t *parse.Tree) (string, error) {
	return p.engine.Render(t), nil
}

// Forbid makes each named tag behave as if undefined: left as literal
// delimiters, its content still scanned normally.
func (p *Parser) Forbid(names ...string) {
	for _, n := range names {
		p.forbidden[n] = true
	}
}

// Permit reverses a prior Forbid for each named tag.
func (p *Parser) Permit(names ...string) {
	for _, n := range names {
		delete(p.forbidden, n)
	}
}

// Errors reports the tag names left unparsed or auto-closed by the last
// Parse/Render call.
func (p *Parser) Errors() []string {
	if p.lastTree == nil {
		return nil
	}
	return p.lastTree.Errors
}

// Tree returns the tree produced by the last Parse/Render call.
func (p *Parser) Tree() *parse.Tree {
	return p.lastTree
}

// SetLogger installs l, replacing the default disabled logger. Pass nil
// to go back to disabled.
func (p *Parser) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Disabled()
	}
	p.logger = l
}

// SetLogWriter is a convenience over SetLogger for the common case of
// wanting trace-level logging written to an io.Writer.
func (p *Parser) SetLogWriter(w io.Writer) error {
	l, err := logging.FromWriter(w)
	if err != nil {
		return err
	}
	p.logger = l
	return nil
}

// EscapeHTML HTML-entity-escapes s, independent of any Parser instance.
func EscapeHTML(s string) string {
	return escape.HTML(s)
}
