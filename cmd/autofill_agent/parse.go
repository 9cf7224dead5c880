package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-autofill/internal/client"
	"github.com/jonathan/resume-autofill/internal/reconcile"
	"github.com/jonathan/resume-autofill/internal/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into a candidate profile",
	Long:  "Upload a resume file to the parser service, print the resulting profile, and list the fields the parser could not determine. With --save the profile is written to the configured backend; with --submit it is also POSTed to the persistence endpoint.",
	RunE:  runParse,
}

var (
	parseResumeFile string
	parseOutputFile string
	parseSave       bool
	parseSubmit     bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseResumeFile, "in", "i", "", "Path to the resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to write the parsed profile JSON (default: stdout)")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Save the parsed profile to the configured backend")
	parseCmd.Flags().BoolVar(&parseSubmit, "submit", false, "Submit the parsed profile to the persistence endpoint")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.ParserURL == "" {
		return fmt.Errorf("parser_url is required (set PARSER_URL or the config file)")
	}

	f, err := os.Open(parseResumeFile)
	if err != nil {
		return fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx := context.Background()
	c := client.New(cfg.ParserURL, cfg.SubmitURL, nil)

	d, err := c.ParseResume(ctx, filepath.Base(parseResumeFile), f)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if parseOutputFile != "" {
		if err := os.WriteFile(parseOutputFile, raw, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Profile written to %s\n", parseOutputFile)
	} else {
		fmt.Println(string(raw))
	}

	unknown := reconcile.Compute(d)
	if len(unknown) > 0 {
		fmt.Printf("\nFields the parser could not determine (%d):\n", len(unknown))
		for _, path := range unknown.Paths() {
			fmt.Printf("  %s\n", path)
		}
	}

	if parseSave {
		backend, cleanup, err := buildBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		st := store.New(ctx, backend)
		if err := st.Save(ctx, d); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Printf("Profile saved to %s backend\n", backend.Name())
	}

	if parseSubmit {
		if cfg.SubmitURL == "" {
			return fmt.Errorf("submit_url is required for --submit")
		}
		if err := c.SubmitProfile(ctx, d); err != nil {
			return fmt.Errorf("failed to submit profile: %w", err)
		}
		fmt.Println("Profile submitted")
	}

	return nil
}
