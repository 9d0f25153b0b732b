// Package types provides type definitions for structured data used throughout the ATS coach.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillToken pairs a skill as it was written with its canonical key.
// Tokens with equal keys are the same skill.
type SkillToken struct {
	Display string `json:"display"`
	Key     string `json:"key"`
}

// ExtractionResult is the coerced output of skill extraction for one text.
// Skills are unique by canonical key and keep insertion order.
type ExtractionResult struct {
	Skills   []string          `json:"skills"`
	AliasMap map[string]string `json:"alias_map"`
	Noise    []string          `json:"noise"`
}

// EmptyExtraction returns a result with non-nil empty fields.
func EmptyExtraction() ExtractionResult {
	return ExtractionResult{
		Skills:   []string{},
		AliasMap: map[string]string{},
		Noise:    []string{},
	}
}

// AlignmentResult reconciles job skills against résumé skills.
// Matched and Missing partition JobCanon by canonical-key membership in CVCanon.
type AlignmentResult struct {
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	JobCanon []string `json:"job_canon"`
	CVCanon  []string `json:"cv_canon"`
}
