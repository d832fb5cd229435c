package internal

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is the hosted Powerdrill API endpoint.
const DefaultBaseURL = "https://ai.data.cloud/api"

// Config holds credentials and connection settings. Both credential values
// come from the environment and are treated as immutable for the process
// lifetime.
type Config struct {
	UserID  string        `env:"POWERDRILL_USER_ID"`
	APIKey  string        `env:"POWERDRILL_PROJECT_API_KEY"`
	BaseURL string        `env:"POWERDRILL_BASE_URL" envDefault:"https://ai.data.cloud/api"`
	Timeout time.Duration `env:"POWERDRILL_TIMEOUT" envDefault:"120s"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.UserID == "" || cfg.APIKey == "" {
		return nil, ErrCredentialsMissing
	}
	return cfg, nil
}
