// Package pipeline orchestrates résumé analysis: skill extraction, alignment and scoring.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-coach/internal/analysis"
	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/pipeline/steps"
	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

// ErrEmptyInput is returned when the job or résumé text is blank.
var ErrEmptyInput = errors.New("job text and résumé text must not be empty")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures one analysis run.
type Options struct {
	// Client backs extraction and alignment refinement. Nil runs without a model,
	// which yields empty skill lists.
	Client llm.Client
	// RunID tags progress events. Generated when empty.
	RunID      string
	OnProgress ProgressCallback
	// Tracker lets callers share step state with steps they run themselves.
	Tracker *steps.Tracker
}

// Report is the full outcome of an analysis run.
type Report struct {
	RunID     string                 `json:"run_id"`
	Analysis  types.AnalysisResult   `json:"analysis"`
	JobSkills types.ExtractionResult `json:"job_skills"`
	CVSkills  types.ExtractionResult `json:"cv_skills"`
	Alignment types.AlignmentResult  `json:"alignment"`
}

// Analyze runs the analysis pipeline. The only error is ErrEmptyInput;
// collaborator failures degrade the affected signal instead.
func Analyze(ctx context.Context, jobText, cvText string, opts Options) (*Report, error) {
	if strings.TrimSpace(jobText) == "" || strings.TrimSpace(cvText) == "" {
		return nil, ErrEmptyInput
	}
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	if opts.Tracker == nil {
		opts.Tracker = steps.NewTracker()
	}

	report := &Report{RunID: opts.RunID}
	extractor := skills.NewExtractor(opts.Client)
	aligner := skills.NewAligner(opts.Client)

	// Extraction of both sides runs concurrently
	var extractGroup errgroup.Group
	extractGroup.Go(func() error {
		report.JobSkills = extractor.Extract(ctx, jobText)
		return nil
	})
	extractGroup.Go(func() error {
		report.CVSkills = extractor.Extract(ctx, cvText)
		return nil
	})
	_ = extractGroup.Wait()
	emit(opts, steps.Extract, "Extracted skills", map[string]int{
		"job_skills": len(report.JobSkills.Skills),
		"cv_skills":  len(report.CVSkills.Skills),
	})

	report.Alignment = aligner.Align(ctx, report.JobSkills.Skills, report.CVSkills.Skills)
	emit(opts, steps.Align, "Aligned skills", map[string]int{
		"matched": len(report.Alignment.Matched),
		"missing": len(report.Alignment.Missing),
	})

	signals := analysis.Signals{
		Coverage:      skills.Coverage(report.Alignment),
		CVText:        cvText,
		MissingSkills: report.Alignment.Missing,
	}
	var scoreGroup errgroup.Group
	scoreGroup.Go(func() error {
		signals.Similarity = analysis.Similarity(jobText, cvText)
		return nil
	})
	scoreGroup.Go(func() error {
		signals.Sections = analysis.CheckSections(cvText)
		return nil
	})
	scoreGroup.Go(func() error {
		signals.HasPhone, signals.HasEmail = analysis.CheckContact(cvText)
		return nil
	})
	_ = scoreGroup.Wait()

	report.Analysis = analysis.Score(signals)
	emit(opts, steps.Score, "Scored résumé", map[string]float64{"score": report.Analysis.Score})
	emit(opts, steps.Complete, "Analysis complete", nil)

	logger.Info().
		Str("run_id", report.RunID).
		Float64("score", report.Analysis.Score).
		Int("matched", len(report.Alignment.Matched)).
		Int("missing", len(report.Alignment.Missing)).
		Msg("analysis complete")

	return report, nil
}

// AnalyzeTexts returns only the AnalysisResult for two texts.
func AnalyzeTexts(ctx context.Context, jobText, cvText string, client llm.Client) (types.AnalysisResult, error) {
	report, err := Analyze(ctx, jobText, cvText, Options{Client: client})
	if err != nil {
		return types.AnalysisResult{}, err
	}
	return report.Analysis, nil
}

// emit records the step and calls the progress callback if configured.
func emit(opts Options, step, message string, content any) {
	if err := opts.Tracker.Complete(step); err != nil {
		logger.Warn().Str("component", "pipeline").Err(err).Msg("step completed out of order")
	}
	Emit(opts.OnProgress, opts.RunID, step, message, content)
}

// Emit sends a progress event for step to cb. A nil cb is ignored.
func Emit(cb ProgressCallback, runID, step, message string, content any) {
	if cb == nil {
		return
	}
	cb(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Message:  message,
		RunID:    runID,
		Content:  content,
	})
}
