package render

import (
	"strings"

	"github.com/gobbcode/bbcode/parse"
)

// renderTemplate interprets tmpl's %-directives against t, splicing in
// content (t's children, already rendered) for a bare %s: %s/%a/%A,
// %{name}s/a/A escape-qualified forms, and literal %%.
func (e *Engine) renderTemplate(tmpl string, t *parse.Tag, content string) string {
	var b strings.Builder
	i := 0
	for i < len(tmpl) {
		if tmpl[i] != '%' {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		if i+1 >= len(tmpl) {
			b.WriteByte('%')
			break
		}
		if tmpl[i+1] == '%' {
			b.WriteByte('%')
			i += 2
			continue
		}

		j := i + 1
		qualifier := ""
		if tmpl[j] == '{' {
			end := strings.IndexByte(tmpl[j:], '}')
			if end < 0 {
				b.WriteByte('%')
				i++
				continue
			}
			qualifier = tmpl[j+1 : j+end]
			j += end + 1
		}
		if j >= len(tmpl) {
			b.WriteByte('%')
			i++
			continue
		}

		switch tmpl[j] {
		case 's':
			b.WriteString(e.substituteS(qualifier, t, content))
		case 'a':
			b.WriteString(e.Escapes.Run(orDefault(qualifier, "html"), t.Fallback()))
		case 'A':
			val := t.Fallback()
			if val == "" {
				val = t.Content()
			}
			b.WriteString(e.Escapes.Run(orDefault(qualifier, "html"), val))
		default:
			b.WriteByte('%')
			i++
			continue
		}
		i = j + 1
	}
	return b.String()
}

func orDefault(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

// substituteS implements %s's three explicit qualifiers. An unrecognized
// qualifier falls back to the default (already-rendered children), the
// same leniency the escape registry applies to an unknown escape name.
func (e *Engine) substituteS(qualifier string, t *parse.Tag, content string) string {
	switch qualifier {
	case "html":
		return e.Escapes.Run("html", t.Content())
	case "noescape":
		return t.Content()
	default: // "", "parse", or anything unrecognized
		return content
	}
}
