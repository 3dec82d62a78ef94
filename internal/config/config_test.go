package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"input_url": "https://example.com/resume",
		"language": "french",
		"extract_timeout_secs": 90,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/resume", cfg.InputURL)
	assert.Equal(t, "french", cfg.Language)
	assert.Equal(t, 90, cfg.ExtractTimeoutSecs)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Input:    "resume.pdf",
		InputURL: "https://example.com/resume",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{
		ExtractTimeoutSecs: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extract_timeout_secs")
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate_UnknownEngine(t *testing.T) {
	cfg := &Config{Engine: "xelatex"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Language:           "english",
		Engine:             "tectonic",
		ExtractTimeoutSecs: 60,
		CompileTimeoutSecs: 30,
		Port:               8080,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestTimeoutDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, DefaultExtractTimeout, cfg.ExtractTimeout())
	assert.Equal(t, DefaultCompileTimeout, cfg.CompileTimeout())

	cfg.ExtractTimeoutSecs = 90
	cfg.CompileTimeoutSecs = 10
	assert.Equal(t, 90*time.Second, cfg.ExtractTimeout())
	assert.Equal(t, 10*time.Second, cfg.CompileTimeout())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Template:           "default.tex",
		Language:           "english",
		Engine:             "tectonic",
		ExtractTimeoutSecs: 60,
		Port:               8080,
	}

	partial := Config{
		Language: "french",
		Input:    "resume.pdf",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "french", merged.Language)
	assert.Equal(t, "resume.pdf", merged.Input)

	// Default values should fill in empty fields
	assert.Equal(t, "default.tex", merged.Template)
	assert.Equal(t, "tectonic", merged.Engine)
	assert.Equal(t, 60, merged.ExtractTimeoutSecs)
	assert.Equal(t, 8080, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Input:    "resume.pdf",
		Language: "english",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "resume.pdf", merged.Input)
	assert.Equal(t, "english", merged.Language)
}
