// Package analysis computes the deterministic résumé signals and the weighted ATS score.
package analysis

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-coach/internal/types"
)

// sectionKeywords lists the headings that mark each section, in English and Turkish.
// A trailing "*" matches any continuation of the word.
var sectionKeywords = map[types.Section][]string{
	types.SectionContact:        {"contact", "personal", "kişisel", "iletişim"},
	types.SectionSummary:        {"summary", "profile", "about", "objective", "özet", "hakkında"},
	types.SectionExperience:     {"experience", "work", "career", "employment", "deneyim", "iş"},
	types.SectionEducation:      {"education", "university", "college", "degree", "eğitim", "üniversite", "okul"},
	types.SectionSkills:         {"skills", "technologies", "competenc*", "yetenekler", "teknoloji"},
	types.SectionCertifications: {"certificat*", "certified", "sertifika*"},
}

var sectionPatterns = compileSectionPatterns()

// compileSectionPatterns builds one case-insensitive pattern per section.
// Word boundaries are Unicode-aware so that keywords like "iş" match.
func compileSectionPatterns() map[types.Section]*regexp.Regexp {
	patterns := make(map[types.Section]*regexp.Regexp, len(sectionKeywords))
	for section, keywords := range sectionKeywords {
		alts := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			if stem, ok := strings.CutSuffix(kw, "*"); ok {
				alts = append(alts, regexp.QuoteMeta(stem)+`[\p{L}\p{N}_]*`)
				continue
			}
			alts = append(alts, regexp.QuoteMeta(kw))
		}
		expr := `(?i)(?:^|[^\p{L}\p{N}_])(?:` + strings.Join(alts, "|") + `)(?:$|[^\p{L}\p{N}_])`
		patterns[section] = regexp.MustCompile(expr)
	}
	return patterns
}

// CheckSections reports which of the fixed sections appear anywhere in cvText.
func CheckSections(cvText string) types.SectionMap {
	var found types.SectionMap
	for _, section := range types.AllSections {
		found[section] = sectionPatterns[section].MatchString(cvText)
	}
	return found
}
