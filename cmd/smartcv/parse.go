package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maelle/smartcv/internal/config"
	"github.com/maelle/smartcv/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Extract structured resume JSON from documents or a URL",
	Long: "Parse resume documents (PDF, DOCX, HTML, plain text), inline text or a public\n" +
		"profile URL into structured resume JSON. Multiple files are extracted\n" +
		"concurrently and written as one JSON file per input.",
	RunE: runParse,
}

var (
	parseText         string
	parseURL          string
	parseOutputPath   string
	parseLanguage     string
	parseDraftSummary bool
	parseAPIKey       string
	parseBrowser      bool
	parseTimeoutSecs  int
	parseVerbose      bool
)

func init() {
	parseCmd.Flags().StringVar(&parseText, "text", "", "Inline resume text to parse instead of a file")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "URL of a resume or profile page to parse")
	parseCmd.Flags().StringVarP(&parseOutputPath, "out", "o", "", "Output JSON file, or directory when parsing multiple files (default stdout)")
	parseCmd.Flags().StringVarP(&parseLanguage, "language", "l", "", "Output language hint (english or french; default auto-detect)")
	parseCmd.Flags().BoolVar(&parseDraftSummary, "draft-summary", false, "Draft a professional summary when the document has none (one extra model call)")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseCmd.Flags().BoolVar(&parseBrowser, "browser", false, "Render URL imports in a headless browser (for script-heavy pages)")
	parseCmd.Flags().IntVar(&parseTimeoutSecs, "timeout", int(config.DefaultExtractTimeout/time.Second), "Timeout per document in seconds (0 disables)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print ingestion and extraction details")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	haveFiles := len(args) > 0
	haveText := strings.TrimSpace(parseText) != ""
	haveURL := parseURL != ""

	modes := 0
	for _, set := range []bool{haveFiles, haveText, haveURL} {
		if set {
			modes++
		}
	}
	if modes == 0 {
		return fmt.Errorf("must provide resume files, --text or --url")
	}
	if modes > 1 {
		return fmt.Errorf("file arguments, --text and --url are mutually exclusive")
	}

	// Get API key
	apiKey := parseAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()
	opts := pipeline.ExtractOptions{
		Text:         parseText,
		URL:          parseURL,
		LanguageHint: parseLanguage,
		DraftSummary: parseDraftSummary,
		APIKey:       apiKey,
		UseBrowser:   parseBrowser,
		Verbose:      parseVerbose,
		Timeout:      time.Duration(parseTimeoutSecs) * time.Second,
	}

	if len(args) > 1 {
		return runParseBatch(ctx, args, opts)
	}

	if len(args) == 1 {
		opts.Path = args[0]
	}
	result, err := pipeline.ExtractResume(ctx, opts)
	if err != nil {
		return err
	}
	return writeParseResult(result, parseOutputPath)
}

// runParseBatch extracts every file and writes one JSON file per input.
func runParseBatch(ctx context.Context, paths []string, opts pipeline.ExtractOptions) error {
	if parseOutputPath != "" {
		if err := os.MkdirAll(parseOutputPath, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	items := pipeline.ExtractBatch(ctx, paths, opts)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", item.Path, item.Err)
			continue
		}
		outPath := outputPathFor(item.Path, parseOutputPath)
		if err := writeParseResult(item.Result, outPath); err != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", item.Path, err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s -> %s\n", item.Path, outPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(items))
	}
	return nil
}

// outputPathFor derives the JSON output path for one batch input: the input's
// base name with a .json extension, placed in outDir when one was given and
// next to the input otherwise.
func outputPathFor(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base += ".json"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(inputPath), base)
}

// writeParseResult marshals the extraction result to outPath, or to stdout
// when outPath is empty.
func writeParseResult(result *pipeline.ExtractResult, outPath string) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outPath == "" {
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", jsonBytes)
		return nil
	}

	if err := os.WriteFile(outPath, append(jsonBytes, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
