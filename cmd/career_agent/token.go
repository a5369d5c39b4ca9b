package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-advisor/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token",
	Long:  "Signs an admin token with the configured JWT secret, for use as a Bearer token on POST /catalog/reload.",
	RunE:  runToken,
}

var tokenOperator string

func init() {
	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "Operator UUID to embed (random when empty)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	jwtConfig := cfg.JWT
	if err := jwtConfig.Validate(); err != nil {
		return fmt.Errorf("invalid JWT config: %w", err)
	}

	operatorID := uuid.New()
	if tokenOperator != "" {
		operatorID, err = uuid.Parse(tokenOperator)
		if err != nil {
			return fmt.Errorf("invalid --operator: %w", err)
		}
	}

	token, _, err := server.NewJWTService(&jwtConfig).GenerateToken(operatorID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
