package tokens

import "regexp"

// placeholderPattern matches a placeholder: an identifier of letters, digits,
// '_' or '-' wrapped in triple at-signs.
var placeholderPattern = regexp.MustCompile(`@@@[A-Za-z0-9_-]+@@@`)

// Substitute replaces every placeholder in line that has an entry in m with
// its value. Placeholders without an entry are left untouched. Values are
// inserted literally and are not scanned again.
func Substitute(line string, m Map) string {
	if len(m) == 0 {
		return line
	}
	return placeholderPattern.ReplaceAllStringFunc(line, func(placeholder string) string {
		if value, ok := m[placeholder]; ok {
			return value
		}
		return placeholder
	})
}

// Placeholders returns the distinct placeholders found in line, in order of
// first appearance.
func Placeholders(line string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range placeholderPattern.FindAllString(line, -1) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
