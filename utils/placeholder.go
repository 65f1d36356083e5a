// utils/placeholder.go - %VAR% template substitution
package utils

import (
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// ReplaceVars substitutes %NAME% placeholders in text with values from vars.
// Matching is case-sensitive. Unknown placeholders are left untouched. The
// text is scanned exactly once, so a substituted value containing '%' is
// inserted verbatim and never treated as a new placeholder.
func ReplaceVars(text string, vars map[string]string) string {
	if strings.TrimSpace(text) == "" || len(vars) == 0 {
		return text
	}
	return placeholderRegex.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
