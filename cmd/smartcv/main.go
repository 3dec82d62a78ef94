// Package main provides the smartcv command line interface and HTTP server
// for turning resume documents into structured JSON and typeset PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartcv",
	Short: "Resume extraction and PDF rendering toolkit",
	Long: "smartcv extracts structured resume data from PDF, DOCX, HTML and plain-text\n" +
		"documents or public profile pages, normalizes it against a strict schema, and\n" +
		"renders it into a typeset LaTeX PDF in English or French.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
