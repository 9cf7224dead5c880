// Package config provides configuration loading and validation for the
// autofill agent.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config is the agent configuration, loadable from a JSON file and
// overridable from the environment. Backend selection is explicit: a set
// database_url selects the Postgres backend, otherwise the profile lives in
// a local file.
type Config struct {
	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Boundaries
	ParserURL string `json:"parser_url,omitempty" validate:"omitempty,url"` // resume parser service
	SubmitURL string `json:"submit_url,omitempty" validate:"omitempty,url"` // profile persistence endpoint

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty selects the file backend
	ProfilePath string `json:"profile_path,omitempty"` // file backend location; empty uses ./applicant_profile.json
	KeyPath     string `json:"key_path,omitempty"`     // at-rest encryption key file for the file backend
	Passphrase  string `json:"-"`                      // env-only alternative to KeyPath

	// Auth
	JWTSecret string `json:"-"` // env-only; empty disables the bearer guard
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{Port: 8080}
}

// Load reads configuration from a JSON file and applies environment
// overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
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
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// FromEnv returns the defaults with environment overrides applied, for
// deployments without a config file.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return &cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("PARSER_URL"); v != "" {
		c.ParserURL = v
	}
	if v := os.Getenv("SUBMIT_URL"); v != "" {
		c.SubmitURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PROFILE_PATH"); v != "" {
		c.ProfilePath = v
	}
	if v := os.Getenv("PROFILE_KEY_PATH"); v != "" {
		c.KeyPath = v
	}
	if v := os.Getenv("PROFILE_PASSPHRASE"); v != "" {
		c.Passphrase = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.KeyPath != "" && c.Passphrase != "" {
		return fmt.Errorf("config error: 'key_path' and PROFILE_PASSPHRASE are mutually exclusive")
	}
	if c.DatabaseURL != "" && (c.KeyPath != "" || c.Passphrase != "") {
		return fmt.Errorf("config error: at-rest encryption applies only to the file backend")
	}

	return nil
}
