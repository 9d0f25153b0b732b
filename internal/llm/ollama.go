package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaClient implements Client against the Ollama chat API.
type OllamaClient struct {
	httpClient *http.Client
	config     *Config
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// NewOllamaClient creates a client for the server at config.BaseURL.
// A nil httpClient uses http.DefaultClient.
func NewOllamaClient(config *Config, httpClient *http.Client) *OllamaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if config.BaseURL == "" {
		cfg := *config
		cfg.BaseURL = DefaultOllamaURL
		config = &cfg
	}
	return &OllamaClient{httpClient: httpClient, config: config}
}

// GenerateContent generates text content using the specified model tier
func (c *OllamaClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.chat(ctx, "", prompt, tier, "", 0.1)
}

// GenerateJSON asks Ollama for a JSON-formatted reply.
func (c *OllamaClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.chat(ctx, "", prompt, tier, "json", 0)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OllamaClient) chat(ctx context.Context, system, prompt string, tier ModelTier, format string, temperature float64) (string, error) {
	ctx, cancel := withTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.post(ctx, c.request(system, prompt, tier, format, temperature, false))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return out.Message.Content, nil
}

// StreamContent reads Ollama's newline-delimited JSON stream.
func (c *OllamaClient) StreamContent(ctx context.Context, system, prompt string, tier ModelTier, onChunk func(string) error) error {
	resp, err := c.post(ctx, c.request(system, prompt, tier, "", 0.3, true))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk ollamaChatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("failed to decode ollama stream chunk: %w", err)
		}
		if chunk.Error != "" {
			return fmt.Errorf("ollama error: %s", chunk.Error)
		}
		if chunk.Message.Content != "" {
			if err := onChunk(chunk.Message.Content); err != nil {
				return err
			}
		}
		if chunk.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ollama stream: %w", err)
	}
	return nil
}

func (c *OllamaClient) request(system, prompt string, tier ModelTier, format string, temperature float64, stream bool) ollamaChatRequest {
	messages := make([]ollamaMessage, 0, 2)
	if system != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: system})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: prompt})
	return ollamaChatRequest{
		Model:    c.config.GetModel(tier),
		Messages: messages,
		Stream:   stream,
		Format:   format,
		Options:  map[string]any{"temperature": temperature},
	}
}

func (c *OllamaClient) post(ctx context.Context, body ollamaChatRequest) (*http.Response, error) {
	if body.Model == "" {
		return nil, fmt.Errorf("no model configured")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ollama request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("ollama returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// GetModel returns the model name for a tier
func (c *OllamaClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client is shared.
func (c *OllamaClient) Close() error {
	return nil
}
