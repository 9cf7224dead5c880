package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-autofill/internal/server"
	"github.com/jonathan/resume-autofill/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the candidate profile over REST: full reads and replacements, single-field patches, unknown-field listing, and deletion.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()
	backend, cleanup, err := buildBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	st := store.New(ctx, backend)
	if err := st.LoadErr(); err != nil {
		// The store stays usable; surface the initial-load failure and let
		// the first successful write repair it.
		fmt.Printf("Warning: initial profile load failed: %v\n", err)
	}

	srv, err := server.New(server.Config{Port: cfg.Port, JWTSecret: cfg.JWTSecret}, st)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Profile backend: %s\n", backend.Name())
	return srv.Start()
}
