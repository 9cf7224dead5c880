package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-autofill/internal/autofill"
	"github.com/jonathan/resume-autofill/internal/store"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a job-application form from the stored profile",
	Long:  "Open the page in a headless browser, match its form fields to profile fields, and type the stored values in. Requires Chrome/Chromium. With --scan the fields are only listed, nothing is typed.",
	RunE:  runFill,
}

var (
	fillURL     string
	fillScan    bool
	fillLogFile string
	fillTimeout time.Duration
	fillVerbose bool
)

func init() {
	fillCmd.Flags().StringVar(&fillURL, "url", "", "Page URL to fill (required)")
	fillCmd.Flags().BoolVar(&fillScan, "scan", false, "Only list the page's form fields and their matches")
	fillCmd.Flags().StringVar(&fillLogFile, "log", "", "Write the fill results as JSON to this file")
	fillCmd.Flags().DurationVar(&fillTimeout, "timeout", autofill.DefaultTimeout, "Browser session timeout")
	fillCmd.Flags().BoolVar(&fillVerbose, "verbose", false, "Log browser activity")
	_ = fillCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(fillCmd)
}

func runFill(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := &autofill.Options{Timeout: fillTimeout, Verbose: fillVerbose}

	if fillScan {
		fields, err := autofill.Fields(ctx, fillURL, opts)
		if err != nil {
			return err
		}
		for _, f := range fields {
			path, ok := autofill.Match(f)
			if !ok {
				path = "(no match)"
			}
			fmt.Printf("  %-10s id=%-20q label=%-30q -> %s\n", f.Tag, f.ID, f.Label, path)
		}
		return nil
	}

	backend, cleanup, err := buildBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	st := store.New(ctx, backend)
	if err := st.LoadErr(); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	d := st.Current()
	if d == nil {
		return fmt.Errorf("no profile saved; run parse first")
	}

	results, err := autofill.Fill(ctx, fillURL, d, opts)
	if err != nil {
		return err
	}

	filled := 0
	for _, r := range results {
		if r.Status == "filled" {
			filled++
		}
		fmt.Printf("  %-8s %-40s %s\n", r.Status, r.Path, r.Selector)
	}
	fmt.Printf("Filled %d of %d matched fields\n", filled, len(results))

	if fillLogFile != "" {
		raw, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		if err := os.WriteFile(fillLogFile, raw, 0644); err != nil {
			return fmt.Errorf("failed to write log file: %w", err)
		}
		fmt.Printf("Results written to %s\n", fillLogFile)
	}

	return nil
}
