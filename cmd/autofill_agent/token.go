package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-autofill/internal/config"
	"github.com/jonathan/resume-autofill/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the REST API",
	Long:  "Generate a signed JWT accepted by a server running with the same secret. Intended for wiring up the browser-extension client and for manual API testing.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "extension", "Subject claim for the token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (set JWT_SECRET or the config file)")
	}

	jwtConfig, err := config.NewJWTConfigWithSecret(cfg.JWTSecret)
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
