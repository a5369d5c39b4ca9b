// Package main provides the career_agent CLI: career recommendations, catalog tooling and
// the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career recommendation engine",
	Long: "career_agent scores a user profile against a catalog of careers and explains the best matches. " +
		"The catalog is read from a CSV file, PostgreSQL or SQLite and falls back to a built-in catalog when it cannot be loaded.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
