package config

import (
	"fmt"
	"os"
	"time"
)

// DefaultSessionTTLHours is how long a session token stays valid.
const DefaultSessionTTLHours = 24

// MinSecretLength is the shortest accepted session signing secret.
const MinSecretLength = 16

// SessionConfig holds the settings for signing session tokens.
type SessionConfig struct {
	Secret   string `json:"secret,omitempty"`
	TTLHours int    `json:"ttl_hours,omitempty"`
}

// SessionConfigFromEnv reads SESSION_SECRET and SESSION_TTL_HOURS (default 24).
// The secret may be empty here; ValidateServe rejects it before the server starts.
func SessionConfigFromEnv() (*SessionConfig, error) {
	ttl, err := envInt("SESSION_TTL_HOURS", DefaultSessionTTLHours)
	if err != nil {
		return nil, err
	}
	return &SessionConfig{
		Secret:   os.Getenv("SESSION_SECRET"),
		TTLHours: ttl,
	}, nil
}

// TTL returns the token lifetime.
func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("config error: SESSION_SECRET is required")
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("config error: SESSION_SECRET must be at least %d characters", MinSecretLength)
	}
	if c.TTLHours < 1 {
		return fmt.Errorf("config error: SESSION_TTL_HOURS must be at least 1 hour, got: %d", c.TTLHours)
	}
	return nil
}

func mergeSession(c, defaults *SessionConfig) *SessionConfig {
	switch {
	case c == nil && defaults == nil:
		return nil
	case c == nil:
		out := *defaults
		return &out
	case defaults == nil:
		out := *c
		return &out
	}
	out := *c
	if out.Secret == "" {
		out.Secret = defaults.Secret
	}
	if out.TTLHours == 0 {
		out.TTLHours = defaults.TTLHours
	}
	return &out
}
