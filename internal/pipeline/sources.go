package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-coach/internal/ingestion"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/parsing"
	"github.com/jonathan/ats-coach/internal/pipeline/steps"
	"github.com/jonathan/ats-coach/internal/types"
)

// ErrNoJobSource is returned when none of the job posting sources is set.
var ErrNoJobSource = errors.New("one of job URL, job text or job file is required")

// RunOptions configures a run that starts from raw sources.
type RunOptions struct {
	Options

	// Exactly one job source is used, in this order of preference.
	JobURL  string
	JobText string
	JobPath string

	CVName string
	CVData []byte

	URL                 ingestion.URLOptions
	ProfessionThreshold float64
}

// RunResult is the outcome of RunPipeline.
type RunResult struct {
	*Report
	JobText    string                    `json:"job_text"`
	CVText     string                    `json:"cv_text"`
	JobMeta    *ingestion.Metadata       `json:"job_meta"`
	CVMeta     *ingestion.Metadata       `json:"cv_meta"`
	Company    types.CompanyMeta         `json:"company"`
	Profession types.ProfessionDetection `json:"profession"`
}

// RunPipeline ingests the job posting and résumé, then runs company extraction,
// profession detection and Analyze concurrently. Ingestion errors are returned;
// collaborator failures degrade.
func RunPipeline(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	if opts.Tracker == nil {
		opts.Tracker = steps.NewTracker()
	}
	if opts.ProfessionThreshold == 0 {
		opts.ProfessionThreshold = parsing.DefaultConfidenceThreshold
	}
	log := logger.Component("pipeline")

	result := &RunResult{}
	var err error

	result.JobText, result.JobMeta, err = ingestJob(ctx, opts)
	if err != nil {
		return nil, err
	}
	emit(opts.Options, steps.IngestJob, "Ingested job posting", map[string]any{
		"source": result.JobMeta.Source,
		"chars":  result.JobMeta.Chars,
	})

	result.CVText, result.CVMeta, err = ingestion.ExtractDocumentText(opts.CVName, opts.CVData)
	if err != nil {
		return nil, err
	}
	emit(opts.Options, steps.IngestCV, "Extracted résumé text", map[string]any{
		"file":  result.CVMeta.Path,
		"chars": result.CVMeta.Chars,
	})

	var g errgroup.Group
	g.Go(func() error {
		result.Company = ingestion.ExtractCompany(ctx, opts.Client, result.JobText, result.JobMeta)
		return nil
	})
	g.Go(func() error {
		detection, derr := parsing.DetectProfession(ctx, opts.Client, result.CVText, opts.ProfessionThreshold)
		if derr != nil {
			log.Warn().Err(derr).Msg("profession detection failed, asking the user")
			unknown := parsing.UnknownDetection()
			detection = &unknown
		}
		result.Profession = *detection
		emit(opts.Options, steps.DetectProfile, "Detected profession", map[string]any{
			"profession":         detection.Profile.DisplayName,
			"confidence":         detection.Confidence,
			"needs_manual_input": detection.NeedsManualInput,
		})
		return nil
	})
	g.Go(func() error {
		report, aerr := Analyze(ctx, result.JobText, result.CVText, opts.Options)
		result.Report = report
		return aerr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func ingestJob(ctx context.Context, opts RunOptions) (string, *ingestion.Metadata, error) {
	switch {
	case opts.JobURL != "":
		return ingestion.IngestFromURL(ctx, opts.JobURL, opts.URL)
	case opts.JobText != "":
		return ingestion.IngestText(opts.JobText)
	case opts.JobPath != "":
		text, meta, err := ingestion.IngestFromFile(opts.JobPath)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read job file: %w", err)
		}
		return text, meta, nil
	}
	return "", nil, ErrNoJobSource
}
