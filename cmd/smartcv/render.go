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
	"github.com/maelle/smartcv/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a structured resume JSON file into a PDF",
	Long: "Render a structured resume JSON file into a typeset PDF. The record is\n" +
		"normalized and validated first, bound into the LaTeX template in the resolved\n" +
		"language, and compiled with tectonic or pdflatex.",
	RunE: runRender,
}

var (
	renderInputFile     string
	renderOutputFile    string
	renderTemplate      string
	renderLanguage      string
	renderEngine        string
	renderPolish        bool
	renderKeepWorkspace bool
	renderTimeoutSecs   int
	renderAPIKey        string
	renderVerbose       bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to structured resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output PDF file (default: input name with .pdf)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Path to a LaTeX template override (default: embedded template)")
	renderCmd.Flags().StringVarP(&renderLanguage, "language", "l", "", "Output language hint (english or french; default: record language)")
	renderCmd.Flags().StringVar(&renderEngine, "engine", "", "LaTeX engine to use (tectonic or pdflatex; default auto-detect)")
	renderCmd.Flags().BoolVar(&renderPolish, "polish", false, "Run one model pass that tightens wording before compiling")
	renderCmd.Flags().BoolVar(&renderKeepWorkspace, "keep-workspace", false, "Keep the compile scratch directory for debugging")
	renderCmd.Flags().IntVar(&renderTimeoutSecs, "timeout", int(config.DefaultCompileTimeout/time.Second), "Compile timeout in seconds (0 uses the default)")
	renderCmd.Flags().StringVar(&renderAPIKey, "api-key", "", "Gemini API key for --polish (overrides GEMINI_API_KEY env var)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print artifact details")
	_ = renderCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	record, err := readRecordFile(renderInputFile)
	if err != nil {
		return err
	}

	apiKey := renderAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if renderPolish && apiKey == "" {
		return fmt.Errorf("--polish needs an API key (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	artifact, err := pipeline.RenderResume(context.Background(), record, pipeline.RenderOptions{
		LanguageHint:   renderLanguage,
		TemplatePath:   renderTemplate,
		Polish:         renderPolish,
		Engine:         renderEngine,
		CompileTimeout: time.Duration(renderTimeoutSecs) * time.Second,
		KeepWorkspace:  renderKeepWorkspace,
		APIKey:         apiKey,
		Verbose:        renderVerbose,
	})
	if err != nil {
		return err
	}

	outputFile := renderOutputFile
	if outputFile == "" {
		outputFile = pdfPathFor(renderInputFile)
	}
	if err := writePDF(outputFile, artifact.PDF); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully rendered resume\n")
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s (%s, %s)\n", outputFile, artifact.Engine, artifact.Duration.Round(time.Millisecond))
	if renderKeepWorkspace && artifact.WorkDir != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Workspace: %s\n", artifact.WorkDir)
	}

	return nil
}

// readRecordFile loads a structured resume record from a JSON file.
func readRecordFile(path string) (*types.StructuredResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var record types.StructuredResume
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return &record, nil
}

// pdfPathFor swaps the input's extension for .pdf.
func pdfPathFor(inputPath string) string {
	if ext := filepath.Ext(inputPath); ext != "" {
		return strings.TrimSuffix(inputPath, ext) + ".pdf"
	}
	return inputPath + ".pdf"
}

// writePDF writes the compiled PDF, creating the output directory if needed.
func writePDF(path string, pdf []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
