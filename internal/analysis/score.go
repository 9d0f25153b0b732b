package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-coach/internal/types"
)

// Score weights. They sum to 1.
const (
	WeightSimilarity = 0.40
	WeightCoverage   = 0.35
	WeightSections   = 0.15
	WeightContact    = 0.10
)

// Résumé length bounds in characters.
const (
	MinCVLength = 1000
	MaxCVLength = 8000
)

// MaxMissingInSuggestion is how many missing skills the suggestion names.
const MaxMissingInSuggestion = 5

// Issue texts.
const (
	IssueMissingPhone = "Phone number is missing"
	IssueMissingEmail = "Email address is missing"
	IssueTooShort     = "Résumé is too short; add more detail"
	IssueTooLong      = "Résumé is too long; condense it to two pages"
)

// GeneralSuggestions are always appended, in this order.
var GeneralSuggestions = []string{
	"Quantify achievements with numbers (% growth, $ saved, number of projects)",
	"Start bullet points with strong action verbs",
	"Focus on the last 10 years of experience",
	"Tailor your résumé for each application",
}

// Signals are the inputs to Score.
type Signals struct {
	Similarity    float64
	Coverage      float64
	Sections      types.SectionMap
	HasPhone      bool
	HasEmail      bool
	CVText        string
	MissingSkills []string
}

// Score combines the signals into an AnalysisResult.
func Score(in Signals) types.AnalysisResult {
	similarity := clamp(in.Similarity, 0, 1)
	coverage := clamp(in.Coverage, 0, 1)
	sectionScore := in.Sections.Fraction()
	contactScore := 0.0
	if in.HasPhone {
		contactScore += 0.5
	}
	if in.HasEmail {
		contactScore += 0.5
	}

	raw := 100 * (WeightSimilarity*similarity + WeightCoverage*coverage +
		WeightSections*sectionScore + WeightContact*contactScore)
	score := clamp(math.Round(raw*10)/10, 0, 100)

	missing := make([]string, len(in.MissingSkills))
	copy(missing, in.MissingSkills)

	return types.AnalysisResult{
		Similarity:  similarity,
		Coverage:    coverage,
		Score:       score,
		Issues:      issues(in),
		Missing:     missing,
		Suggestions: suggestions(missing),
		Sections:    in.Sections,
		HasPhone:    in.HasPhone,
		HasEmail:    in.HasEmail,
	}
}

func issues(in Signals) []string {
	out := []string{}
	if !in.HasPhone {
		out = append(out, IssueMissingPhone)
	}
	if !in.HasEmail {
		out = append(out, IssueMissingEmail)
	}
	if absent := in.Sections.Missing(); len(absent) > 0 {
		labels := make([]string, 0, len(absent))
		for _, s := range absent {
			labels = append(labels, s.Label())
		}
		out = append(out, "Missing sections: "+strings.Join(labels, ", "))
	}

	switch length := utf8.RuneCountInString(in.CVText); {
	case length < MinCVLength:
		out = append(out, IssueTooShort)
	case length > MaxCVLength:
		out = append(out, IssueTooLong)
	}
	return out
}

func suggestions(missing []string) []string {
	out := make([]string, 0, len(GeneralSuggestions)+1)
	if len(missing) > 0 {
		named := missing
		if len(named) > MaxMissingInSuggestion {
			named = named[:MaxMissingInSuggestion]
		}
		out = append(out, fmt.Sprintf("Add the missing skills to your résumé: %s", strings.Join(named, ", ")))
	}
	return append(out, GeneralSuggestions...)
}
