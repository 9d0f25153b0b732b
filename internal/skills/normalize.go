// Package skills canonicalizes, extracts and aligns skill vocabularies.
package skills

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/ats-coach/internal/types"
)

// aliases expands common abbreviations. Every value is a fixed point of Normalize.
var aliases = map[string]string{
	"ml":       "machine learning",
	"ai":       "artificial intelligence",
	"cv":       "computer vision",
	"nlp":      "natural language processing",
	"dl":       "deep learning",
	"pm":       "project management",
	"hr":       "human resources",
	"qa":       "quality assurance",
	"js":       "javascript",
	"ts":       "typescript",
	"nodejs":   "node.js",
	"node":     "node.js",
	"c sharp":  "c#",
	"golang":   "go",
	"k8s":      "kubernetes",
	"reactjs":  "react",
	"react.js": "react",
	"vuejs":    "vue.js",
}

var (
	separatorRun  = regexp.MustCompile(`[\s\-_/]+`)
	quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "ʼ", "'")
)

// Normalize maps a raw skill string to its canonical key.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(separatorRun.ReplaceAllString(s, " "))
	s = quoteReplacer.Replace(s)
	s = strings.ReplaceAll(s, ". net", ".net")
	if alias, ok := aliases[s]; ok {
		return alias
	}
	return s
}

// Token pairs a display form with its canonical key.
func Token(display string) types.SkillToken {
	return types.SkillToken{Display: display, Key: Normalize(display)}
}

// Dedupe trims entries, drops empties and keeps the first display form per canonical key.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		display := strings.TrimSpace(item)
		if display == "" {
			continue
		}
		tok := Token(display)
		if tok.Key == "" || seen[tok.Key] {
			continue
		}
		seen[tok.Key] = true
		out = append(out, tok.Display)
	}
	return out
}
