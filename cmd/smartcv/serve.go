package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maelle/smartcv/internal/config"
	"github.com/maelle/smartcv/internal/logger"
	"github.com/maelle/smartcv/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that exposes the parse, render and generate operations\n" +
		"behind a passphrase login. Requires GEMINI_API_KEY, APP_PASSWORD_HASH and\n" +
		"JWT_SECRET in the environment.",
	RunE: runServe,
}

var (
	serveHost        string
	servePort        int
	serveEngine      string
	serveTemplate    string
	serveBrowser     bool
	serveExtractSecs int
	serveCompileSecs int
	serveConfigFile  string
	serveJSONLogs    bool
	serveDebug       bool
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveEngine, "engine", "", "LaTeX engine to use (tectonic or pdflatex; default auto-detect)")
	serveCmd.Flags().StringVarP(&serveTemplate, "template", "t", "", "Path to a LaTeX template override (default: embedded template)")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false, "Render URL imports in a headless browser (for script-heavy pages)")
	serveCmd.Flags().IntVar(&serveExtractSecs, "extract-timeout", 0, "Extraction timeout in seconds (default 60)")
	serveCmd.Flags().IntVar(&serveCompileSecs, "compile-timeout", 0, "Compile timeout in seconds (default 30)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to a JSON config file (flags win over file values)")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit logs as JSON instead of console output")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Host:               serveHost,
		Port:               servePort,
		Engine:             serveEngine,
		Template:           serveTemplate,
		UseBrowser:         serveBrowser,
		ExtractTimeoutSecs: serveExtractSecs,
		CompileTimeoutSecs: serveCompileSecs,
	}

	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(serveJSONLogs, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(server.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		APIKey:         apiKey,
		Engine:         cfg.Engine,
		TemplatePath:   cfg.Template,
		UseBrowser:     cfg.UseBrowser,
		ExtractTimeout: cfg.ExtractTimeout(),
		CompileTimeout: cfg.CompileTimeout(),
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
