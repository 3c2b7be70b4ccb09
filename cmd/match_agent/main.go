// Package main provides the entry point for the resume-matcher CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_agent",
	Short: "Resume Matcher scoring engine",
	Long:  "Resume Matcher scores candidate resumes against stored job requirements via a deterministic rule-based model or a delegated generative model, and keeps an append-only prediction ledger.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
