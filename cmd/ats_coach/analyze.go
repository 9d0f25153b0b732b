package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-coach/internal/fetch"
	"github.com/jonathan/ats-coach/internal/ingestion"
	"github.com/jonathan/ats-coach/internal/observability"
	"github.com/jonathan/ats-coach/internal/pipeline"
)

type analyzeOptions struct {
	jobURL  string
	jobFile string
	cvPath  string
	jsonOut bool
	verbose bool
	browser bool
	root    *rootOptions
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{root: root}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a résumé against a job posting",
		Long:  "Ingest a job posting from a URL or text file and a résumé (PDF, DOCX or text), then report the ATS score, skill alignment and suggestions.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.jobURL, "job-url", "u", "", "URL of the job posting")
	cmd.Flags().StringVarP(&opts.jobFile, "job-file", "j", "", "Path to a text file containing the job posting")
	cmd.Flags().StringVarP(&opts.cvPath, "cv", "c", "", "Path to the résumé (.pdf, .docx or .txt)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print progress and detailed skill tables")
	cmd.Flags().BoolVar(&opts.browser, "browser", false, "Render the job page in headless Chrome when the download has too little text")
	_ = cmd.MarkFlagRequired("cv")
	cmd.MarkFlagsMutuallyExclusive("job-url", "job-file")
	cmd.MarkFlagsOneRequired("job-url", "job-file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := opts.root.loadConfig()
	if err != nil {
		return err
	}

	cvData, err := os.ReadFile(opts.cvPath)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}

	client, err := opts.root.newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient(client)

	runOpts := pipeline.RunOptions{
		Options:             pipeline.Options{Client: client},
		JobURL:              opts.jobURL,
		JobPath:             opts.jobFile,
		CVName:              filepath.Base(opts.cvPath),
		CVData:              cvData,
		ProfessionThreshold: cfg.ProfessionThreshold,
	}
	if opts.browser || cfg.UseBrowser {
		runOpts.URL = ingestion.URLOptions{Render: fetch.ChromeRenderer(browserTimeout)}
	}
	if opts.verbose && !opts.jsonOut {
		errOut := cmd.ErrOrStderr()
		runOpts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(errOut, "[%s] %s\n", event.Step, event.Message) //nolint:errcheck
		}
	}

	result, err := pipeline.RunPipeline(ctx, runOpts)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(out, result)
	}

	printer := observability.NewPrinter(out)
	printer.PrintProfile(result.Company, &result.Profession)
	if opts.verbose {
		printer.PrintSkills("Job skills", &result.JobSkills)
		printer.PrintSkills("Résumé skills", &result.CVSkills)
	}
	printer.PrintAlignment(&result.Alignment)
	printer.PrintAnalysis(&result.Analysis)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
