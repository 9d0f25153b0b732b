package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/ats-coach/internal/config"
	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/server/ratelimit"
	"github.com/jonathan/ats-coach/internal/session"
)

const (
	testJobText = "Acme is hiring a Backend Engineer. Requirements: Go, AWS and Docker experience."
	testCVText  = "Jane Doe\njane@example.com\n+1 (555) 123-4567\nSummary\nBackend engineer.\nExperience\nBuilt Go services on Docker.\nEducation\nBSc Computer Science\nSkills\nGo, Docker"

	confidentProfession = `{"name": "backend_developer", "display_name": "Backend Developer", "description": "Builds server-side systems", "keywords": ["api"], "technologies": ["go"], "confidence": 0.92}`
	unsureProfession    = `{"name": "unknown", "display_name": "Unknown", "description": "", "confidence": 0.2}`
)

// stubClient answers each collaborator prompt by recognizing its wording.
type stubClient struct {
	mu         sync.Mutex
	profession string
	chunks     []string
	streamErr  error
	system     string
	streamed   string
}

func (c *stubClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "JOB_SKILLS:"):
		return "not json", nil
	case strings.Contains(prompt, "job posting parser"):
		return `{"company": "Acme", "role_title": "Backend Engineer", "industry": null, "location": "Remote"}`, nil
	case strings.Contains(prompt, "technical recruiter"):
		return c.profession, nil
	case strings.Contains(prompt, "Jane Doe"):
		return `["Go", "go", "Docker"]`, nil
	default:
		return `{"skills": ["Go", "AWS", "Docker"], "alias_map": {"golang": "Go"}, "noise": ["team player"]}`, nil
	}
}

func (c *stubClient) StreamContent(_ context.Context, system, prompt string, _ llm.ModelTier, onChunk func(string) error) error {
	c.mu.Lock()
	c.system = system
	c.streamed = prompt
	c.mu.Unlock()
	for _, chunk := range c.chunks {
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return c.streamErr
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }

func (c *stubClient) Close() error { return nil }

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Session = &config.SessionConfig{Secret: "server-test-secret-0123", TTLHours: 1}
	return &cfg
}

func newTestServer(client *stubClient) *Server {
	cfg := testConfig()
	var c llm.Client
	if client != nil {
		c = client
	}
	return New(Options{
		Config:  cfg,
		Client:  c,
		Store:   session.NewMemoryStore(time.Hour),
		Tokens:  session.NewTokenService(cfg.Session),
		Limiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		Version: "test",
	})
}
