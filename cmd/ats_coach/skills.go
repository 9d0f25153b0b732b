package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-coach/internal/skills"
)

func newExtractSkillsCmd(root *rootOptions) *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "extract-skills",
		Short: "Extract skills from a text file",
		Long:  "Ask the LLM for the professional skills mentioned in a text and print the coerced result as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			client, err := root.newClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeClient(client)

			result := skills.NewExtractor(client).Extract(cmd.Context(), string(data))
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Path to the text file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newAlignCmd(root *rootOptions) *cobra.Command {
	var jobSkills, cvSkills []string

	cmd := &cobra.Command{
		Use:     "align",
		Short:   "Align job skills against résumé skills",
		Long:    "Compute matched and missing job skills from two comma-separated lists. With an LLM, near-duplicate résumé skills are merged first.",
		Example: "  ats_coach align --job Go,AWS,Docker --cv golang,docker --offline",
		RunE:    func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			client, err := root.newClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeClient(client)

			result := skills.NewAligner(client).Align(cmd.Context(), trimAll(jobSkills), trimAll(cvSkills))
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"alignment": result,
				"coverage":  skills.Coverage(result),
			})
		},
	}
	cmd.Flags().StringSliceVar(&jobSkills, "job", nil, "Job skills, comma separated")
	cmd.Flags().StringSliceVar(&cvSkills, "cv", nil, "Résumé skills, comma separated")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
