// Package config lets a host describe a bbcode.Options tag table and
// feature flags in a YAML file instead of Go source — useful for
// deployments that want operators to tweak the allowed tag set without a
// redeploy. Templates are the only Output form expressible in YAML; a
// caller wanting callback-backed tags attaches them to the result of
// Build() afterward.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gobbcode/bbcode"
	"github.com/gobbcode/bbcode/escape"
	"github.com/gobbcode/bbcode/textproc"
)

// TagSpec is the YAML-shaped mirror of bbcode.Definition.
type TagSpec struct {
	Class        string `yaml:"class"`
	Single       bool   `yaml:"single"`
	Short        bool   `yaml:"short"`
	Classic      *bool  `yaml:"classic"`
	ParseContent *bool  `yaml:"parse_content"`
	Output       string `yaml:"output"`
}

// URLFinder is the YAML-shaped mirror of textproc.URLFinder.
type URLFinder struct {
	MaxLength int    `yaml:"max_length"`
	Format    string `yaml:"format"`
}

// Smileys is the YAML-shaped mirror of textproc.Smileys.
type Smileys struct {
	BaseURL string            `yaml:"base_url"`
	Icons   map[string]string `yaml:"icons"`
	Format  string            `yaml:"format"`
}

// Options is the YAML-deserializable mirror of a bbcode.Options literal.
type Options struct {
	Tags             map[string]TagSpec `yaml:"tags"`
	CloseOpenTags    bool               `yaml:"close_open_tags"`
	StrictAttributes *bool              `yaml:"strict_attributes"`
	DirectAttributes *bool              `yaml:"direct_attributes"`
	AttributeQuote   string             `yaml:"attribute_quote"`
	URLFinder        *URLFinder         `yaml:"url_finder"`
	Smileys          *Smileys           `yaml:"smileys"`
	Linebreaks       *bool              `yaml:"linebreaks"`
	StripLinebreaks  *bool              `yaml:"strip_linebreaks"`
}

// Load reads and unmarshals the YAML document at path.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &o, nil
}

// Build resolves o into a bbcode.Options, validating each tag's class
// and any escape name its template references via a %{name} qualifier.
// Together with bbcode.New's attribute-quote check, this rejects a bad
// configuration before it ever reaches the render engine.
func (o *Options) Build() (bbcode.Options, error) {
	registry := escape.NewRegistry(nil)
	tags := make(map[string]bbcode.Definition, len(o.Tags))
	for name, spec := range o.Tags {
		class, err := parseClass(spec.Class)
		if err != nil {
			return bbcode.Options{}, fmt.Errorf("config: tag %q: %w", name, err)
		}
		if err := validateTemplateEscapes(spec.Output, registry); err != nil {
			return bbcode.Options{}, fmt.Errorf("config: tag %q: %w", name, err)
		}
		tags[name] = bbcode.Definition{
			Class:        class,
			Single:       spec.Single,
			Short:        spec.Short,
			Classic:      spec.Classic,
			ParseContent: spec.ParseContent,
			Output:       bbcode.Template(spec.Output),
		}
	}
	return bbcode.Options{
		Tags:             tags,
		CloseOpenTags:    o.CloseOpenTags,
		StrictAttributes: o.StrictAttributes,
		DirectAttributes: o.DirectAttributes,
		AttributeQuote:   o.AttributeQuote,
		URLFinder:        o.URLFinder.resolve(),
		Smileys:          o.Smileys.resolve(),
		Linebreaks:       o.Linebreaks,
		StripLinebreaks:  o.StripLinebreaks,
	}, nil
}

func parseClass(s string) (bbcode.Class, error) {
	switch s {
	case "", "inline":
		return bbcode.ClassInline, nil
	case "block":
		return bbcode.ClassBlock, nil
	case "url":
		return bbcode.ClassURL, nil
	default:
		return "", fmt.Errorf("unknown class %q (want inline, block, or url)", s)
	}
}

func (u *URLFinder) resolve() *textproc.URLFinder {
	if u == nil {
		return nil
	}
	return &textproc.URLFinder{MaxLength: u.MaxLength, Format: u.Format}
}

func (s *Smileys) resolve() *textproc.Smileys {
	if s == nil {
		return nil
	}
	return &textproc.Smileys{BaseURL: s.BaseURL, Icons: s.Icons, Format: s.Format}
}
