// Package coach answers career questions about an analyzed résumé, streaming
// the recruiter's reply from the LLM.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/prompts"
	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

const (
	// MaxContextSkills is how many skills of each list are shown to the model.
	MaxContextSkills = 10
	// MaxSnippetRunes bounds the job and résumé excerpts in the context block.
	MaxSnippetRunes = 1500
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Input is everything the coach knows about one candidate.
type Input struct {
	Profession    types.ProfessionProfile
	Company       types.CompanyMeta
	JobText       string
	CVText        string
	JobSkills     []string
	CVSkills      []string
	MatchedSkills []string
	Question      string
}

// Coach streams answers from an LLM client.
type Coach struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates a coach backed by client.
func New(client llm.Client) *Coach {
	return &Coach{client: client, tier: llm.TierAdvanced}
}

// Stream sends the question with its context and passes each reply chunk to onChunk.
// An error from onChunk stops the stream and is returned.
func (c *Coach) Stream(ctx context.Context, in Input, onChunk func(string) error) error {
	if strings.TrimSpace(in.Question) == "" {
		return ErrEmptyQuestion
	}
	if c.client == nil {
		return errors.New("LLM client is not configured")
	}

	system, err := SystemPrompt(in.Profession, in.Company)
	if err != nil {
		return err
	}
	userPrompt, err := ContextBlock(in)
	if err != nil {
		return err
	}

	chunks := 0
	err = c.client.StreamContent(ctx, system, userPrompt, c.tier, func(chunk string) error {
		chunks++
		return onChunk(chunk)
	})
	if err != nil {
		logger.Warn().Str("component", "coach").Err(err).Int("chunks", chunks).Msg("coach stream ended with error")
		return fmt.Errorf("coach stream failed: %w", err)
	}
	logger.Debug().Str("component", "coach").Int("chunks", chunks).Msg("coach stream complete")
	return nil
}

// SystemPrompt builds the recruiter persona for the hiring company and role.
// Unknown company fields fall back to generic wording.
func SystemPrompt(profile types.ProfessionProfile, company types.CompanyMeta) (string, error) {
	template, err := prompts.Get("coach.json", "recruiter-system")
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{"Context": hiringContext(profile, company)}), nil
}

// hiringContext renders e.g. `Acme hiring for "Go Engineer" (Fintech, Berlin)`.
func hiringContext(profile types.ProfessionProfile, company types.CompanyMeta) string {
	name := valueOr(company.Company, "the company")
	role := valueOr(company.RoleTitle, profile.DisplayName)
	if role == "" {
		role = "the role"
	}
	ctx := fmt.Sprintf("%s hiring for %q", name, role)

	var details []string
	for _, v := range []*string{company.Industry, company.Location} {
		if s := valueOr(v, ""); s != "" {
			details = append(details, s)
		}
	}
	if len(details) > 0 {
		ctx += " (" + strings.Join(details, ", ") + ")"
	}
	return ctx
}

// ContextBlock builds the user message: profile, skills, company hints,
// truncated texts and the question.
func ContextBlock(in Input) (string, error) {
	template, err := prompts.Get("coach.json", "coach-context")
	if err != nil {
		return "", err
	}

	hints := ""
	if !in.Company.IsEmpty() {
		data, err := json.Marshal(in.Company)
		if err == nil {
			hints = "\n**Company hints:** " + string(data) + "\n"
		}
	}

	profession := in.Profession.DisplayName
	if profession == "" {
		profession = in.Profession.Name
	}

	return prompts.Format(template, map[string]string{
		"Profession":    profession,
		"CVSkills":      joinFirst(in.CVSkills, MaxContextSkills),
		"JobSkills":     joinFirst(in.JobSkills, MaxContextSkills),
		"MatchedSkills": joinFirst(in.MatchedSkills, MaxContextSkills),
		"CompanyHints":  hints,
		"JobText":       skills.Truncate(in.JobText, MaxSnippetRunes),
		"CVText":        skills.Truncate(in.CVText, MaxSnippetRunes),
		"Question":      strings.TrimSpace(in.Question),
	}), nil
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func valueOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return strings.TrimSpace(*s)
}
