package config

import (
	"fmt"
	"strings"

	"github.com/gobbcode/bbcode/escape"
)

// validateTemplateEscapes scans tmpl for every %{name} qualifier and
// rejects the configuration if name isn't registered, so a typo in a
// YAML tag table is caught at Build time rather than silently falling
// back to "html" at render time. %{parse}s, the %s directive's own
// parse qualifier, is accepted.
func validateTemplateEscapes(tmpl string, registry *escape.Registry) error {
	i := 0
	for i < len(tmpl) {
		if tmpl[i] != '%' {
			i++
			continue
		}
		if i+1 >= len(tmpl) {
			break
		}
		if tmpl[i+1] == '%' {
			i += 2
			continue
		}
		j := i + 1
		if tmpl[j] != '{' {
			i = j + 1
			continue
		}
		end := strings.IndexByte(tmpl[j:], '}')
		if end < 0 {
			break
		}
		name := tmpl[j+1 : j+end]
		isParseS := name == "parse" && j+end+1 < len(tmpl) && tmpl[j+end+1] == 's'
		if !isParseS && !registry.Has(name) {
			return fmt.Errorf("unknown escape %q referenced in template", name)
		}
		i = j + end + 1
	}
	return nil
}
