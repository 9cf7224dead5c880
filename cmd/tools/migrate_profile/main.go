// Command migrate_profile copies a locally stored candidate profile into the
// Postgres backend, for moving an installation from file storage to a
// database without re-parsing the resume.
//
// Usage:
//
//	go run cmd/tools/migrate_profile/main.go
//
// Requires DATABASE_URL to be set. PROFILE_PATH selects the source file
// (default: ./applicant_profile.json); PROFILE_KEY_PATH or
// PROFILE_PASSPHRASE must match the source's at-rest encryption, if any.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-autofill/internal/crypt"
	"github.com/jonathan/resume-autofill/internal/profile"
	"github.com/jonathan/resume-autofill/internal/store"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	source, err := buildSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	fmt.Println("=== Profile Migration ===")
	fmt.Printf("Source: %s\n", source.Path())

	// Read the source and prepare the target concurrently; either failure
	// aborts the migration before anything is written.
	var (
		d  *profile.Data
		ok bool
		pg *store.PostgresBackend
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d, ok, err = source.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load source profile: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pg, err = store.NewPostgres(gctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		return pg.EnsureSchema(gctx)
	})
	if err := g.Wait(); err != nil {
		if pg != nil {
			pg.Close()
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	if !ok {
		fmt.Println("No profile found at the source path. Nothing to migrate.")
		return
	}

	if _, existed, err := pg.Load(ctx); err == nil && existed {
		fmt.Println("Note: overwriting an existing profile in the database.")
	}

	if err := pg.Save(ctx, d); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write profile to database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile migrated under key %q.\n", store.ProfileKey)
	fmt.Println("=== Migration Complete ===")
}

// buildSource constructs the file backend the environment describes,
// mirroring the agent's own configuration keys.
func buildSource() (*store.FileBackend, error) {
	var fb *store.FileBackend
	if path := os.Getenv("PROFILE_PATH"); path != "" {
		fb = store.NewFileAt(path)
	} else {
		fb = store.NewFile(".")
	}

	keyPath := os.Getenv("PROFILE_KEY_PATH")
	passphrase := os.Getenv("PROFILE_PASSPHRASE")
	switch {
	case keyPath != "" && passphrase != "":
		return nil, fmt.Errorf("PROFILE_KEY_PATH and PROFILE_PASSPHRASE are mutually exclusive")
	case keyPath != "":
		key, err := crypt.LoadKey(keyPath)
		if err != nil {
			return nil, err
		}
		cipher, err := crypt.New(key)
		if err != nil {
			return nil, err
		}
		fb = fb.WithCipher(cipher)
	case passphrase != "":
		fb = fb.WithPassphrase(passphrase)
	}
	return fb, nil
}
