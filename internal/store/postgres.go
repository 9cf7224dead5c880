package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-autofill/internal/profile"
)

// PostgresBackend persists the profile as a single JSONB row keyed by the
// fixed logical key. It is the primary strategy when a database is
// configured.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool and verifies connectivity.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

// EnsureSchema creates the profile table if it does not exist.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS applicant_profiles (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create applicant_profiles table: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (b *PostgresBackend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// Name implements Backend.
func (b *PostgresBackend) Name() string {
	return "postgres"
}

// Load implements Backend. No row under the profile key means no profile was
// ever saved.
func (b *PostgresBackend) Load(ctx context.Context) (*profile.Data, bool, error) {
	var raw []byte
	err := b.pool.QueryRow(ctx,
		`SELECT data FROM applicant_profiles WHERE key = $1`,
		ProfileKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load profile: %w", err)
	}

	var d profile.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored profile: %w", err)
	}
	return &d, true, nil
}

// Save implements Backend. The write is a single-row upsert; concurrent
// writers resolve to whatever order the database observes.
func (b *PostgresBackend) Save(ctx context.Context, d *profile.Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = b.pool.Exec(ctx,
		`INSERT INTO applicant_profiles (key, data)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = NOW()`,
		ProfileKey, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Clear implements Backend. Deleting an absent row succeeds.
func (b *PostgresBackend) Clear(ctx context.Context) error {
	_, err := b.pool.Exec(ctx,
		`DELETE FROM applicant_profiles WHERE key = $1`,
		ProfileKey,
	)
	if err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}
