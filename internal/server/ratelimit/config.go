package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one method and path. A Path ending in "/" matches by prefix.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; zero or less means unlimited
	Window time.Duration
	Burst  int // bucket capacity; Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // buckets unused for this long are dropped
	Allowlist       map[string]bool
	Denylist        map[string]bool
	Rules           []Rule
}

// DefaultConfig is used when no configuration is given.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// DefaultRules puts the model-backed endpoints under tighter limits than reads.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "GET", Path: "/health"},
		{Method: "POST", Path: "/api/analyze", Limit: 20, Window: time.Hour, Burst: 3},
		{Method: "POST", Path: "/api/analyze/stream", Limit: 20, Window: time.Hour, Burst: 3},
		{Method: "POST", Path: "/api/analyze/text", Limit: 60, Window: time.Hour, Burst: 5},
		{Method: "GET", Path: "/api/chat", Limit: 60, Window: time.Hour, Burst: 10},
		{Method: "POST", Path: "/api/profession/override", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over DefaultConfig.
// Unparseable values keep their defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Allowlist = parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	cfg.Denylist = parseIPList(os.Getenv("RATE_LIMIT_DENYLIST"))
	return cfg
}

// Match returns the rule for method and path, preferring exact paths over prefixes.
func (c *Config) Match(method, path string) (Rule, bool) {
	for _, rule := range c.Rules {
		if rule.Method == method && rule.Path == path {
			return rule, true
		}
	}
	for _, rule := range c.Rules {
		if rule.Method == method && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return b
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return d
	}
	return fallback
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
