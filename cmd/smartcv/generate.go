package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/maelle/smartcv/internal/config"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Turn a resume document into a typeset PDF in one step",
	Long: "Generate runs the whole pipeline: extract structured data from a resume\n" +
		"document or profile URL, normalize and validate it, and render it into a\n" +
		"typeset PDF.",
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateURL          string
	generateOutputFile   string
	generateLanguage     string
	generateDraftSummary bool
	generatePolish       bool
	generateTemplate     string
	generateEngine       string
	generateBrowser      bool
	generateExtractSecs  int
	generateCompileSecs  int
	generateAPIKey       string
	generateKeepWork     bool
	generateVerbose      bool
)

func init() {
	generateCmd.Flags().StringVar(&generateURL, "url", "", "URL of a resume or profile page instead of a file")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "resume.pdf", "Path to output PDF file")
	generateCmd.Flags().StringVarP(&generateLanguage, "language", "l", "", "Output language hint (english or french; default auto-detect)")
	generateCmd.Flags().BoolVar(&generateDraftSummary, "draft-summary", false, "Draft a professional summary when the document has none")
	generateCmd.Flags().BoolVar(&generatePolish, "polish", false, "Run one model pass that tightens wording before compiling")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Path to a LaTeX template override (default: embedded template)")
	generateCmd.Flags().StringVar(&generateEngine, "engine", "", "LaTeX engine to use (tectonic or pdflatex; default auto-detect)")
	generateCmd.Flags().BoolVar(&generateBrowser, "browser", false, "Render URL imports in a headless browser (for script-heavy pages)")
	generateCmd.Flags().IntVar(&generateExtractSecs, "extract-timeout", int(config.DefaultExtractTimeout/time.Second), "Extraction timeout in seconds (0 disables)")
	generateCmd.Flags().IntVar(&generateCompileSecs, "compile-timeout", int(config.DefaultCompileTimeout/time.Second), "Compile timeout in seconds (0 uses the default)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVar(&generateKeepWork, "keep-workspace", false, "Keep the compile scratch directory for debugging")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print extraction and artifact details")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	if len(args) == 0 && generateURL == "" {
		return fmt.Errorf("must provide a resume file or --url")
	}
	if len(args) > 0 && generateURL != "" {
		return fmt.Errorf("a file argument and --url are mutually exclusive")
	}

	// Get API key
	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()

	// One client serves the extraction and the optional polish pass.
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	extractOpts := pipeline.ExtractOptions{
		URL:          generateURL,
		LanguageHint: generateLanguage,
		DraftSummary: generateDraftSummary,
		UseBrowser:   generateBrowser,
		Verbose:      generateVerbose,
		Timeout:      time.Duration(generateExtractSecs) * time.Second,
		Client:       client,
	}
	if len(args) > 0 {
		extractOpts.Path = args[0]
	}

	result, err := pipeline.ExtractResume(ctx, extractOpts)
	if err != nil {
		return err
	}

	artifact, err := pipeline.RenderResume(ctx, result.Record, pipeline.RenderOptions{
		LanguageHint:   result.Language.String(),
		TemplatePath:   generateTemplate,
		Polish:         generatePolish,
		Engine:         generateEngine,
		CompileTimeout: time.Duration(generateCompileSecs) * time.Second,
		KeepWorkspace:  generateKeepWork,
		Verbose:        generateVerbose,
		Client:         client,
	})
	if err != nil {
		return err
	}

	if err := writePDF(generateOutputFile, artifact.PDF); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully generated resume PDF\n")
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s (%s, %s)\n", generateOutputFile, artifact.Engine, artifact.Duration.Round(time.Millisecond))
	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "Warnings: %d entries were dropped or adjusted during normalization\n", len(result.Warnings))
	}
	if generateKeepWork && artifact.WorkDir != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Workspace: %s\n", artifact.WorkDir)
	}

	return nil
}
