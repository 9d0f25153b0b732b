package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-coach/internal/ingestion"
	"github.com/jonathan/ats-coach/internal/logger"
)

func newIngestJobCmd() *cobra.Command {
	var textFile, urlStr, outDir string

	cmd := &cobra.Command{
		Use:   "ingest-job",
		Short: "Ingest a job posting from a text file or URL",
		Long:  "Ingest a job posting from either a text file or URL, clean the content, and write the cleaned text with metadata.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Init(logger.ConfigFromEnv())

			var (
				cleanedText string
				metadata    *ingestion.Metadata
				err         error
			)
			if textFile != "" {
				cleanedText, metadata, err = ingestion.IngestFromFile(textFile)
				if err != nil {
					return fmt.Errorf("failed to ingest from file: %w", err)
				}
			} else {
				cleanedText, metadata, err = ingestion.IngestFromURL(cmd.Context(), urlStr, ingestion.URLOptions{})
				if err != nil {
					return fmt.Errorf("failed to ingest from URL: %w", err)
				}
			}

			if err := ingestion.WriteOutput(outDir, cleanedText, metadata); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully ingested job posting\nCleaned text: %s/job_posting.cleaned.txt\nMetadata: %s/job_posting.meta.json\n", outDir, outDir) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().StringVarP(&textFile, "text-file", "t", "", "Path to text file containing job posting")
	cmd.Flags().StringVarP(&urlStr, "url", "u", "", "URL to fetch job posting from")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.MarkFlagsMutuallyExclusive("text-file", "url")
	cmd.MarkFlagsOneRequired("text-file", "url")
	return cmd
}
