package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-autofill/internal/config"
	"github.com/jonathan/resume-autofill/internal/crypt"
	"github.com/jonathan/resume-autofill/internal/store"
)

// buildBackend constructs the storage backend the configuration selects:
// Postgres when database_url is set, otherwise the local file backend,
// optionally encrypted at rest.
func buildBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create postgres backend: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	var fb *store.FileBackend
	if cfg.ProfilePath != "" {
		fb = store.NewFileAt(cfg.ProfilePath)
	} else {
		fb = store.NewFile(".")
	}

	switch {
	case cfg.KeyPath != "":
		cipher, err := crypt.LoadOrCreate(cfg.KeyPath)
		if err != nil {
			return nil, nil, err
		}
		fb = fb.WithCipher(cipher)
	case cfg.Passphrase != "":
		fb = fb.WithPassphrase(cfg.Passphrase)
	}

	return fb, func() {}, nil
}

// loadConfig reads the --config file (when given) with env overrides, and
// validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
