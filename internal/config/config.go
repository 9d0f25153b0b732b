// Package config loads service configuration from the environment and JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/ats-coach/internal/llm"
)

// Defaults for every optional setting.
const (
	DefaultPort                = 8080
	DefaultLLMTimeoutSeconds   = 60
	DefaultProfessionThreshold = 0.6
	DefaultMaxUploadMB         = 10
)

// Config is the service configuration. JSON field names mirror the environment
// variables in lower case.
type Config struct {
	Port int `json:"port,omitempty"`

	LLMProvider       llm.Provider `json:"llm_provider,omitempty"`        // ollama or gemini
	GeminiAPIKey      string       `json:"gemini_api_key,omitempty"`      // required for gemini
	OllamaURL         string       `json:"ollama_url,omitempty"`          // Ollama base URL
	OllamaModel       string       `json:"ollama_model,omitempty"`        // Ollama model for every tier
	LLMTimeoutSeconds int          `json:"llm_timeout_seconds,omitempty"` // per collaborator call

	ProfessionThreshold float64 `json:"prof_conf_threshold,omitempty"` // confidence below which the user is asked

	DatabaseURL string         `json:"database_url,omitempty"` // sessions are kept in memory when empty
	Session     *SessionConfig `json:"session,omitempty"`

	UseBrowser  bool `json:"use_browser,omitempty"`   // headless fallback for script-rendered job pages
	MaxUploadMB int  `json:"max_upload_mb,omitempty"` // résumé upload limit

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// Defaults returns a configuration with every default applied.
func Defaults() Config {
	return Config{
		Port:                DefaultPort,
		LLMProvider:         llm.ProviderOllama,
		OllamaURL:           llm.DefaultOllamaURL,
		OllamaModel:         llm.DefaultOllamaModel,
		LLMTimeoutSeconds:   DefaultLLMTimeoutSeconds,
		ProfessionThreshold: DefaultProfessionThreshold,
		MaxUploadMB:         DefaultMaxUploadMB,
		Session:             &SessionConfig{TTLHours: DefaultSessionTTLHours},
	}
}

// FromEnv builds a configuration from environment variables over the defaults.
// Call godotenv before this to pick up a .env file.
func FromEnv() (*Config, error) {
	cfg := Defaults()
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LLMProvider = llm.Provider(strings.ToLower(envString("LLM_PROVIDER", string(cfg.LLMProvider))))
	cfg.GeminiAPIKey = envString("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.OllamaURL = envString("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaModel = envString("OLLAMA_MODEL", cfg.OllamaModel)
	if cfg.LLMTimeoutSeconds, err = envInt("LLM_TIMEOUT", cfg.LLMTimeoutSeconds); err != nil {
		return nil, err
	}
	if cfg.ProfessionThreshold, err = envFloat("PROF_CONF_THRESHOLD", cfg.ProfessionThreshold); err != nil {
		return nil, err
	}
	cfg.DatabaseURL = envString("DATABASE_URL", cfg.DatabaseURL)
	if cfg.UseBrowser, err = envBool("USE_BROWSER", cfg.UseBrowser); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB, err = envInt("MAX_UPLOAD_MB", cfg.MaxUploadMB); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envString("LOG_FORMAT", cfg.LogFormat)

	session, err := SessionConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Session = session

	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file. Missing fields stay zero;
// use MergeWithDefaults to fill them.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and provider requirements. The session secret
// is only checked by ValidateServe.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	switch c.LLMProvider {
	case llm.ProviderOllama:
		if c.OllamaURL == "" {
			return fmt.Errorf("config error: 'ollama_url' is required for the ollama provider")
		}
	case llm.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config error: unknown llm_provider %q (expected ollama or gemini)", c.LLMProvider)
	}
	if c.LLMTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'llm_timeout_seconds' must be non-negative")
	}
	if c.ProfessionThreshold < 0 || c.ProfessionThreshold > 1 {
		return fmt.Errorf("config error: 'prof_conf_threshold' must be within [0, 1], got %g", c.ProfessionThreshold)
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	return nil
}

// ValidateServe runs Validate and also requires session signing settings.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Session == nil {
		return fmt.Errorf("config error: SESSION_SECRET is required")
	}
	return c.Session.normalize()
}

// MergeWithDefaults returns a copy with zero fields filled from defaults.
// Booleans cannot be told apart from an explicit false, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OllamaURL == "" {
		result.OllamaURL = defaults.OllamaURL
	}
	if result.OllamaModel == "" {
		result.OllamaModel = defaults.OllamaModel
	}
	if result.LLMTimeoutSeconds == 0 {
		result.LLMTimeoutSeconds = defaults.LLMTimeoutSeconds
	}
	if result.ProfessionThreshold == 0 {
		result.ProfessionThreshold = defaults.ProfessionThreshold
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	result.Session = mergeSession(c.Session, defaults.Session)

	return result
}

// LLMTimeout is the per-call collaborator timeout.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return DefaultLLMTimeoutSeconds * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// UploadLimit is the maximum résumé upload size in bytes.
func (c *Config) UploadLimit() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = DefaultMaxUploadMB
	}
	return int64(mb) << 20
}

// LLMConfig translates the settings into an LLM client configuration.
func (c *Config) LLMConfig() *llm.Config {
	var cfg *llm.Config
	if c.LLMProvider == llm.ProviderGemini {
		cfg = llm.DefaultGeminiConfig()
	} else {
		cfg = llm.DefaultOllamaConfig(c.OllamaURL, c.OllamaModel)
	}
	cfg.Timeout = c.LLMTimeout()
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
