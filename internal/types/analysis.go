// Package types provides type definitions for structured data used throughout the ATS coach.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Section identifies one of the fixed résumé sections.
type Section int

// The six sections checked on every résumé, in reporting order.
const (
	SectionContact Section = iota
	SectionSummary
	SectionExperience
	SectionEducation
	SectionSkills
	SectionCertifications

	sectionCount
)

// AllSections lists every section in reporting order.
var AllSections = []Section{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
}

var sectionKeys = [sectionCount]string{
	"contact",
	"summary",
	"experience",
	"education",
	"skills",
	"certifications",
}

var sectionLabels = [sectionCount]string{
	"Contact Information",
	"Summary/Profile",
	"Experience",
	"Education",
	"Skills",
	"Certifications",
}

// Key returns the JSON key of the section.
func (s Section) Key() string {
	if s < 0 || s >= sectionCount {
		return ""
	}
	return sectionKeys[s]
}

// Label returns the human-readable section name used in issues.
func (s Section) Label() string {
	if s < 0 || s >= sectionCount {
		return ""
	}
	return sectionLabels[s]
}

// SectionMap records which sections were found. The key set is fixed.
type SectionMap [sectionCount]bool

// Present reports whether section s was found.
func (m SectionMap) Present(s Section) bool {
	if s < 0 || s >= sectionCount {
		return false
	}
	return m[s]
}

// Count returns the number of sections present.
func (m SectionMap) Count() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}

// Fraction returns the share of sections present, in [0,1].
func (m SectionMap) Fraction() float64 {
	return float64(m.Count()) / float64(sectionCount)
}

// Missing returns absent sections in reporting order.
func (m SectionMap) Missing() []Section {
	var missing []Section
	for _, s := range AllSections {
		if !m[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// MarshalJSON encodes the map as an object keyed by section key.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	obj := make(map[string]bool, sectionCount)
	for _, s := range AllSections {
		obj[s.Key()] = m[s]
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes an object keyed by section key. Unknown keys are rejected.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	var obj map[string]bool
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	var out SectionMap
	for key, present := range obj {
		found := false
		for _, s := range AllSections {
			if s.Key() == key {
				out[s] = present
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown section %q", key)
		}
	}
	*m = out
	return nil
}

// AnalysisResult is the outcome of scoring one résumé against one job posting.
type AnalysisResult struct {
	Similarity  float64    `json:"similarity"`
	Coverage    float64    `json:"coverage"`
	Score       float64    `json:"score"`
	Issues      []string   `json:"issues"`
	Missing     []string   `json:"missing"`
	Suggestions []string   `json:"suggestions"`
	Sections    SectionMap `json:"sections"`
	HasPhone    bool       `json:"has_phone"`
	HasEmail    bool       `json:"has_email"`
}
