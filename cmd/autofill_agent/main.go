// Package main provides the entry point for the Resume Autofill agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill_agent",
	Short: "Resume Autofill profile agent",
	Long:  "Resume Autofill parses uploaded resumes into a candidate profile, tracks fields the parser could not determine, and persists the profile through a Postgres or local-file backend.",
}

var configPath string

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
