// Package main provides the entry point for the ATS coach CLI and HTTP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-coach/internal/config"
	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	offline    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ats_coach",
		Short:         "ATS résumé analyzer and career coach",
		Long:          "ats_coach scores a résumé against a job posting the way an applicant tracking system would, and serves a streaming recruiter chat over HTTP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "JSON config file layered over the environment")
	cmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "Run without an LLM (skill extraction and profile detection are skipped)")

	cmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newExtractSkillsCmd(opts),
		newAlignCmd(opts),
		newIngestJobCmd(),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment, overlays the optional JSON file and
// initializes logging from the result.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if o.configPath != "" {
		fileCfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := logger.ConfigFromEnv()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Output = os.Stderr
	logger.Init(logCfg)

	return cfg, nil
}

// newClient returns nil in offline mode; every collaborator degrades without a model.
func (o *rootOptions) newClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if o.offline {
		return nil, nil
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

func closeClient(client llm.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close LLM client")
	}
}
