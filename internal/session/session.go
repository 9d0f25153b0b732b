// Package session holds per-user analysis state between the analyze and chat
// endpoints, and the signed tokens that identify it.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-coach/internal/coach"
	"github.com/jonathan/ats-coach/internal/pipeline"
	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

// Stored text and list sizes.
const (
	SnippetRunes    = 1200
	MaxStoredSkills = 25
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is the state kept for one user between requests.
type Session struct {
	ID            uuid.UUID                  `json:"id"`
	JobText       string                     `json:"job_text"`
	CVText        string                     `json:"cv_text"`
	Company       types.CompanyMeta          `json:"company"`
	Profession    *types.ProfessionDetection `json:"profession,omitempty"`
	JobSkills     []string                   `json:"job_skills"`
	CVSkills      []string                   `json:"cv_skills"`
	MatchedSkills []string                   `json:"matched_skills"`
	MissingSkills []string                   `json:"missing_skills"`
	Score         float64                    `json:"score"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// New creates an empty session with a fresh ID.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordAnalysis stores snippets of both texts and capped skill lists from report.
func (s *Session) RecordAnalysis(jobText, cvText string, company types.CompanyMeta, report *pipeline.Report) {
	s.JobText = skills.Truncate(jobText, SnippetRunes)
	s.CVText = skills.Truncate(cvText, SnippetRunes)
	s.Company = company
	s.JobSkills = capped(report.JobSkills.Skills)
	s.CVSkills = capped(report.CVSkills.Skills)
	s.MatchedSkills = capped(report.Alignment.Matched)
	s.MissingSkills = capped(report.Alignment.Missing)
	s.Score = report.Analysis.Score
}

// HasAnalysis reports whether an analysis has been recorded.
func (s *Session) HasAnalysis() bool {
	return s.JobText != "" && s.CVText != ""
}

// NeedsManualProfession reports whether the user must confirm a profession
// before coaching.
func (s *Session) NeedsManualProfession() bool {
	return s.Profession == nil || s.Profession.NeedsManualInput
}

// CoachInput builds the coach request for question.
func (s *Session) CoachInput(question string) coach.Input {
	in := coach.Input{
		Company:       s.Company,
		JobText:       s.JobText,
		CVText:        s.CVText,
		JobSkills:     s.JobSkills,
		CVSkills:      s.CVSkills,
		MatchedSkills: s.MatchedSkills,
		Question:      question,
	}
	if s.Profession != nil {
		in.Profession = s.Profession.Profile
	}
	return in
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	out := *s
	out.Company = types.CompanyMeta{
		Company:   cloneString(s.Company.Company),
		RoleTitle: cloneString(s.Company.RoleTitle),
		Industry:  cloneString(s.Company.Industry),
		Location:  cloneString(s.Company.Location),
	}
	if s.Profession != nil {
		p := *s.Profession
		p.Profile.Keywords = cloneSlice(p.Profile.Keywords)
		p.Profile.Technologies = cloneSlice(p.Profile.Technologies)
		out.Profession = &p
	}
	out.JobSkills = cloneSlice(s.JobSkills)
	out.CVSkills = cloneSlice(s.CVSkills)
	out.MatchedSkills = cloneSlice(s.MatchedSkills)
	out.MissingSkills = cloneSlice(s.MissingSkills)
	return &out
}

func capped(items []string) []string {
	if len(items) > MaxStoredSkills {
		items = items[:MaxStoredSkills]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func cloneSlice(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
