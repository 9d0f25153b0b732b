package skills

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/prompts"
	"github.com/jonathan/ats-coach/internal/schemas"
	"github.com/jonathan/ats-coach/internal/types"
)

// Caps on how many skills are sent for refinement.
const (
	MaxRefineJobSkills = 50
	MaxRefineCVSkills  = 80
)

// Aligner reconciles a job's skills with a résumé's skills.
type Aligner struct {
	client llm.Client
}

// NewAligner creates an aligner. With a nil client only the deterministic pass runs.
func NewAligner(client llm.Client) *Aligner {
	return &Aligner{client: client}
}

type refinement struct {
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
	DedupedCV []string `json:"deduped_cv"`
}

// Align computes matched and missing job skills. The result always satisfies
// the partition invariant, whatever the refinement step returned.
func (a *Aligner) Align(ctx context.Context, jobSkills, cvSkills []string) types.AlignmentResult {
	result := BaseAlignment(jobSkills, cvSkills)

	if a != nil && a.client != nil && len(result.JobCanon) > 0 {
		refined, err := a.refine(ctx, result)
		if err != nil {
			logger.Warn().Str("component", "aligner").Err(err).Msg("alignment refinement failed, using deterministic result")
		} else if len(refined.DedupedCV) > 0 {
			result.CVCanon = Dedupe(refined.DedupedCV)
		}
	}

	return Reconcile(result.JobCanon, result.CVCanon)
}

// BaseAlignment is the deterministic key-based alignment.
func BaseAlignment(jobSkills, cvSkills []string) types.AlignmentResult {
	return Reconcile(Dedupe(jobSkills), Dedupe(cvSkills))
}

// Reconcile partitions jobCanon into matched and missing by canonical-key
// membership in cvCanon. Both outputs keep jobCanon order.
func Reconcile(jobCanon, cvCanon []string) types.AlignmentResult {
	cvKeys := make(map[string]bool, len(cvCanon))
	for _, skill := range cvCanon {
		cvKeys[Normalize(skill)] = true
	}

	result := types.AlignmentResult{
		Matched:  []string{},
		Missing:  []string{},
		JobCanon: nonNil(jobCanon),
		CVCanon:  nonNil(cvCanon),
	}
	for _, skill := range result.JobCanon {
		if cvKeys[Normalize(skill)] {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
		}
	}
	return result
}

func (a *Aligner) refine(ctx context.Context, base types.AlignmentResult) (*refinement, error) {
	jobJSON, err := json.Marshal(capList(base.JobCanon, MaxRefineJobSkills))
	if err != nil {
		return nil, err
	}
	cvJSON, err := json.Marshal(capList(base.CVCanon, MaxRefineCVSkills))
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet("skills.json", "align-skills")
	prompt := prompts.Format(template, map[string]string{
		"JobSkills": string(jobJSON),
		"CVSkills":  string(cvJSON),
	})

	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("refinement call: %w", err)
	}

	raw, err := llm.ParseLenient(reply)
	if err != nil {
		return nil, fmt.Errorf("refinement reply: %w", err)
	}
	if err := schemas.Validate(schemas.Alignment, string(raw)); err != nil {
		return nil, fmt.Errorf("refinement reply: %w", err)
	}

	var out refinement
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("refinement reply: %w", err)
	}
	return &out, nil
}

// Coverage is the share of job skills found in the résumé. It is 0 when the job lists none.
func Coverage(a types.AlignmentResult) float64 {
	if len(a.JobCanon) == 0 {
		return 0
	}
	return float64(len(a.Matched)) / float64(len(a.JobCanon))
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
