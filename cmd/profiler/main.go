// Package main provides the entry point for the company profiler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Company research pipeline",
	Long:  "Profiler researches a company from its website: it maps the site, selects and scrapes the most informative pages, and extracts a structured profile with logo and brand colors.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
