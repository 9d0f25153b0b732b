package parsing

import (
	"context"
	"errors"

	"github.com/jonathan/ats-coach/internal/llm"
)

type stubClient struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *stubClient) StreamContent(context.Context, string, string, llm.ModelTier, func(string) error) error {
	return errors.New("not implemented")
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }
