package parsing

import (
	"strings"
	"unicode"
)

// NormalizeProfessionName turns a profession name into a snake_case key,
// e.g. "Backend Developer" -> "backend_developer".
func NormalizeProfessionName(name string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return sb.String()
}

// NormalizeTerms trims terms, drops empties and removes case-insensitive duplicates.
// The result is never nil.
func NormalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.Join(strings.Fields(term), " ")
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
	}
	return out
}
