package analysis

import (
	"testing"

	"github.com/jonathan/ats-coach/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckSections(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		present []types.Section
	}{
		{
			name: "english headings",
			text: "CONTACT\nSummary\nWork Experience\nEducation\nSkills\nCertifications",
			present: []types.Section{
				types.SectionContact, types.SectionSummary, types.SectionExperience,
				types.SectionEducation, types.SectionSkills, types.SectionCertifications,
			},
		},
		{
			name: "turkish headings",
			text: "Kişisel Bilgiler\nÖzet\nDeneyim\nEğitim\nYetenekler\nSertifikalar",
			present: []types.Section{
				types.SectionContact, types.SectionSummary, types.SectionExperience,
				types.SectionEducation, types.SectionSkills, types.SectionCertifications,
			},
		},
		{
			name:    "competency prefix",
			text:    "Core Competencies: negotiation",
			present: []types.Section{types.SectionSkills},
		},
		{
			name:    "keyword inside another word does not count",
			text:    "networking homework",
			present: nil,
		},
		{
			name:    "empty",
			text:    "",
			present: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSections(tt.text)
			want := map[types.Section]bool{}
			for _, s := range tt.present {
				want[s] = true
			}
			for _, s := range types.AllSections {
				assert.Equal(t, want[s], got.Present(s), "section %s", s.Key())
			}
		})
	}
}
