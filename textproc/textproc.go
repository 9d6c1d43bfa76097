// Package textproc implements the text processor pipeline: smiley
// substitution, URL detection, HTML escaping, and line-break rewriting,
// composed in a fixed order, with a placeholder-splicing scheme so that
// smiley/URL markup survives the HTML-escape pass untouched.
//
// The smiley and URL passes are the two places (besides the attribute
// parser) that warrant a compiled regular expression rather than an
// explicit cursor: both are bounded, well-known patterns with no need for
// a hand-rolled state machine.
package textproc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gobbcode/bbcode/escape"
)

// Smileys configures the smiley substitution pass.
type Smileys struct {
	BaseURL string
	Icons   map[string]string // matched token -> icon file name, relative to BaseURL
	// Format receives (BaseURL, icon file name, matched token) in that
	// order. Defaults to an <img> tag if empty.
	Format string
}

// URLFinder configures the URL-detection pass.
type URLFinder struct {
	MaxLength int // 0 disables title truncation
	// Format receives (escaped href, escaped/truncated title) in that
	// order. Defaults to a plain <a> tag if empty.
	Format string
}

const (
	defaultSmileyFormat = `<img src="%s%s" alt="%s">`
	defaultURLFormat    = `<a href="%s" rel="nofollow">%s</a>`
)

// Pipeline holds one parser's text-processing configuration.
type Pipeline struct {
	Smileys    *Smileys
	URLFinder  *URLFinder
	Linebreaks bool
	// Escape defaults to escape.HTML; callers may substitute a different
	// registry entry (the render engine always passes the registry's
	// "html" function, so this only matters to direct textproc callers).
	Escape func(string) string
}

func (p *Pipeline) escapeFn() func(string) string {
	if p.Escape != nil {
		return p.Escape
	}
	return escape.HTML
}

// segment is either a literal run (subject to escaping/line-break
// rewriting) or a raw, already-safe replacement (a smiley <img> or a URL
// <a>) that must pass through untouched.
type segment struct {
	raw  bool
	text string
}

// Run executes the full five-step pipeline over s. suppressURL disables
// the URL-finder pass regardless of configuration — the render engine
// sets this when the text's ancestor class-counts already include
// url >= 1, so a URL tag's own content never gets re-linkified.
func (p *Pipeline) Run(s string, suppressURL bool) string {
	segs := []segment{{text: s}}
	if p.Smileys != nil && len(p.Smileys.Icons) > 0 {
		segs = replaceSmileys(s, p.Smileys)
	}
	if p.URLFinder != nil && !suppressURL {
		segs = expandURLs(segs, p.URLFinder)
	}

	esc := p.escapeFn()
	var b strings.Builder
	for _, seg := range segs {
		if seg.raw {
			b.WriteString(seg.text)
			continue
		}
		t := esc(seg.text)
		if p.Linebreaks {
			t = replaceLinebreaks(t)
		}
		b.WriteString(t)
	}
	return b.String()
}

// RunWithUserProcessor implements the partial-override pipeline used when
// Options.TextProcessor is set without a "" pseudo-tag definition:
// smiley pass, URL-finder, then the user's function (responsible for its
// own escaping), then the line-break pass over the combined result.
func (p *Pipeline) RunWithUserProcessor(s string, user func(string) string, suppressURL bool) string {
	segs := []segment{{text: s}}
	if p.Smileys != nil && len(p.Smileys.Icons) > 0 {
		segs = replaceSmileys(s, p.Smileys)
	}
	if p.URLFinder != nil && !suppressURL {
		segs = expandURLs(segs, p.URLFinder)
	}

	var b strings.Builder
	for _, seg := range segs {
		if seg.raw {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(user(seg.text))
	}
	out := b.String()
	if p.Linebreaks {
		out = replaceLinebreaks(out)
	}
	return out
}

// smileyRegexp matches a bare token, with no boundary anchors of its own:
// boundary flanking is checked separately (see isBoundaryByte) against the
// original text rather than baked into the match, so that a single
// whitespace byte between two flanked smileys can serve as the trailing
// boundary of the first and the leading boundary of the second without
// either match "consuming" it. Tokens are tried longest-first so that
// e.g. ":-)" wins over a hypothetical ":-" prefix token.
func smileyRegexp(icons map[string]string) *regexp.Regexp {
	tokens := make([]string, 0, len(icons))
	for t := range icons {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
	alts := make([]string, len(tokens))
	for i, t := range tokens {
		alts[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

// isBoundaryByte reports whether the byte at idx is a valid smiley
// boundary: the start/end of text, or one of \s's ASCII whitespace bytes.
func isBoundaryByte(text string, idx int) bool {
	if idx < 0 || idx >= len(text) {
		return true
	}
	switch text[idx] {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func replaceSmileys(text string, sm *Smileys) []segment {
	re := smileyRegexp(sm.Icons)
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []segment{{text: text}}
	}
	format := sm.Format
	if format == "" {
		format = defaultSmileyFormat
	}
	var segs []segment
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start < last {
			continue // inside a token already replaced
		}
		if !isBoundaryByte(text, start-1) || !isBoundaryByte(text, end) {
			continue // not flanked by whitespace/start/end: not a smiley occurrence
		}
		if start > last {
			segs = append(segs, segment{text: text[last:start]})
		}
		token := text[start:end]
		icon := sm.Icons[token]
		segs = append(segs, segment{raw: true, text: fmt.Sprintf(format, sm.BaseURL, icon, token)})
		last = end
	}
	if last < len(text) {
		segs = append(segs, segment{text: text[last:]})
	}
	return segs
}

// urlPattern recognizes an absolute "scheme://" URL or a bare "www."
// host, stopping before trailing punctuation that is more likely to be
// prose than part of the URL.
var urlPattern = regexp.MustCompile(`(?:[A-Za-z][A-Za-z0-9+.\-]*://|www\.)[^\s<>"]+[^\s<>".,;:!?)\]]`)

func expandURLs(segs []segment, uf *URLFinder) []segment {
	var out []segment
	for _, seg := range segs {
		if seg.raw {
			out = append(out, seg)
			continue
		}
		out = append(out, splitURLs(seg.text, uf)...)
	}
	return out
}

func splitURLs(text string, uf *URLFinder) []segment {
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []segment{{text: text}}
	}
	format := uf.Format
	if format == "" {
		format = defaultURLFormat
	}
	var segs []segment
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			segs = append(segs, segment{text: text[last:start]})
		}
		raw := text[start:end]
		href := raw
		if strings.HasPrefix(href, "www.") {
			href = "http://" + href
		}
		title := raw
		if uf.MaxLength > 0 && len(title) > uf.MaxLength {
			title = title[:uf.MaxLength] + "..."
		}
		segs = append(segs, segment{raw: true, text: fmt.Sprintf(format, escape.Link(href), escape.HTML(title))})
		last = end
	}
	if last < len(text) {
		segs = append(segs, segment{text: text[last:]})
	}
	return segs
}

var linebreakReplacer = strings.NewReplacer("\r\n", "<br>\n", "\r", "<br>\n", "\n", "<br>\n")

func replaceLinebreaks(s string) string {
	return linebreakReplacer.Replace(s)
}
