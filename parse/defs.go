package parse

// TagSpec is the subset of a tag definition the scanner and tree builder
// need to enforce the nesting policy and choose a parsing strategy. The
// richer notion of a definition — including its template/callback output —
// lives in the root bbcode package, which is the only thing that knows how
// to render a tag; the parser only needs to know its shape.
type TagSpec struct {
	Class        Class
	Single       bool
	Short        bool
	Classic      bool
	ParseContent bool
}

// Definitions looks up a TagSpec by tag name. The root bbcode package's
// Options implements this by wrapping its Definition map.
type Definitions interface {
	Lookup(name string) (TagSpec, bool)
}

// Options configures the scanner and tree builder (C3), independent of
// how tags eventually render.
type Options struct {
	Defs             Definitions
	CloseOpenTags    bool
	StrictAttributes bool
	DirectAttributes bool
	AttributeQuote   string
	AttrParser       AttrParser
	StripLinebreaks  bool
}

func (o Options) attrOptions() AttrOptions {
	return AttrOptions{Direct: o.DirectAttributes, Quotes: o.AttributeQuote}
}

func (o Options) parser() AttrParser {
	if o.AttrParser != nil {
		return o.AttrParser
	}
	return ParseAttrs
}

func (o Options) lookup(name string) (TagSpec, bool) {
	if o.Defs == nil {
		return TagSpec{}, false
	}
	return o.Defs.Lookup(name)
}
