package oracle

import (
	"fmt"
	"regexp"
)

// placeholderPattern matches "{name}" and "{name[key]}".
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(?:\[([^\]]+)\])?\}`)

// lookupFunc resolves a placeholder. key is empty for "{name}" forms.
type lookupFunc func(name, key string) (string, bool)

// expand substitutes every placeholder in tmpl. An unresolved placeholder is an error.
func expand(tmpl string, lookup lookupFunc) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		m := placeholderPattern.FindStringSubmatch(match)
		val, ok := lookup(m[1], m[2])
		if !ok {
			if missing == "" {
				missing = match
			}
			return match
		}
		return val
	})
	if missing != "" {
		return "", fmt.Errorf("unknown placeholder %s in template %q", missing, tmpl)
	}
	return out, nil
}

// checkPlaceholders verifies tmpl only references the given names.
func checkPlaceholders(tmpl string, names ...string) error {
	_, err := expand(tmpl, func(name, key string) (string, bool) {
		if key != "" {
			return "", false
		}
		for _, n := range names {
			if n == name {
				return "", true
			}
		}
		return "", false
	})
	return err
}
