package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-coach/internal/db"
	"github.com/jonathan/ats-coach/internal/fetch"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/server"
	"github.com/jonathan/ats-coach/internal/server/ratelimit"
	"github.com/jonathan/ats-coach/internal/session"
)

// browserTimeout bounds one headless render of a job page.
const browserTimeout = 30 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing résumé analysis, profession override and the streaming coach chat.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, root *rootOptions, port int) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Port = port
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	log := logger.Component("serve")

	client, err := root.newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient(client)

	var store session.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		sessions := db.NewSessionStore(database, cfg.Session.TTL())
		if n, err := sessions.PurgeExpired(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to purge expired sessions")
		} else if n > 0 {
			log.Info().Int64("purged", n).Msg("removed expired sessions")
		}
		store = sessions
		log.Info().Msg("sessions stored in PostgreSQL")
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL())
		log.Info().Msg("sessions stored in memory")
	}

	var renderer fetch.Renderer
	if cfg.UseBrowser {
		renderer = fetch.ChromeRenderer(browserTimeout)
	}

	limiter := ratelimit.NewLimiter(ratelimit.LoadConfig())

	srv := server.New(server.Options{
		Config:   cfg,
		Client:   client,
		Store:    store,
		Tokens:   session.NewTokenService(cfg.Session),
		Renderer: renderer,
		Limiter:  limiter,
		Version:  version,
	})
	return srv.Run(ctx)
}
