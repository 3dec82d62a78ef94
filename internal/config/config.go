// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultExtractTimeout bounds the model call during extraction.
	DefaultExtractTimeout = 60 * time.Second
	// DefaultCompileTimeout bounds a LaTeX compiler run.
	DefaultCompileTimeout = 30 * time.Second
	// DefaultPort is the HTTP listen port.
	DefaultPort = 8080
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Input    string `json:"input,omitempty"`     // Path to a resume document (pdf/docx/html/txt)
	InputURL string `json:"input_url,omitempty"` // URL of a resume or profile page
	Template string `json:"template,omitempty"`  // Path to a LaTeX template override

	// Behavior
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key
	Language     string `json:"language,omitempty"`      // Output language hint (english/french)
	Engine       string `json:"engine,omitempty"`        // LaTeX engine (tectonic/pdflatex)
	Polish       bool   `json:"polish,omitempty"`        // Run the LaTeX polish pass before compiling
	DraftSummary bool   `json:"draft_summary,omitempty"` // Draft a summary when the resume has none
	UseBrowser   bool   `json:"use_browser,omitempty"`   // Use headless browser for SPA profile pages
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information

	// Timeouts in seconds; zero means the default
	ExtractTimeoutSecs int `json:"extract_timeout_secs,omitempty"`
	CompileTimeoutSecs int `json:"compile_timeout_secs,omitempty"`

	// Server
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; CLI flag validation handles those
// after merging.
func (c *Config) Validate() error {
	if c.Input != "" && c.InputURL != "" {
		return fmt.Errorf("config error: 'input' and 'input_url' are mutually exclusive")
	}

	if c.ExtractTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'extract_timeout_secs' must be non-negative")
	}
	if c.CompileTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'compile_timeout_secs' must be non-negative")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	switch c.Engine {
	case "", "tectonic", "pdflatex":
	default:
		return fmt.Errorf("config error: unknown engine %q (want tectonic or pdflatex)", c.Engine)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// ExtractTimeout returns the configured extraction timeout or the default.
func (c *Config) ExtractTimeout() time.Duration {
	if c.ExtractTimeoutSecs > 0 {
		return time.Duration(c.ExtractTimeoutSecs) * time.Second
	}
	return DefaultExtractTimeout
}

// CompileTimeout returns the configured compile timeout or the default.
func (c *Config) CompileTimeout() time.Duration {
	if c.CompileTimeoutSecs > 0 {
		return time.Duration(c.CompileTimeoutSecs) * time.Second
	}
	return DefaultCompileTimeout
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.InputURL == "" {
		result.InputURL = defaults.InputURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}

	// Int fields: use default if zero
	if result.ExtractTimeoutSecs == 0 {
		result.ExtractTimeoutSecs = defaults.ExtractTimeoutSecs
	}
	if result.CompileTimeoutSecs == 0 {
		result.CompileTimeoutSecs = defaults.CompileTimeoutSecs
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
