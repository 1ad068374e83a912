// Package main provides the entry point for the Resume Forge HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_forge",
	Short: "Resume Forge HTTP API Server",
	Long:  "Resume Forge stores versioned resume sections, matches them against job descriptions, and renders tailored LaTeX resumes via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
