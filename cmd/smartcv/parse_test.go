package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand_RequiresInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "parse")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "must provide resume files, --text or --url")
}

func TestParseCommand_MutuallyExclusiveInputs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "parse", "resume.txt", "--text", "some resume text")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestParseCommand_RequiresAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "parse", "--text", "some resume text")
	cmd.Env = minimalEnv()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "API key is required")
}

func TestParseCommand_FileNotFound(t *testing.T) {
	binaryPath := getBinaryPath(t)

	missing := filepath.Join(t.TempDir(), "no-such-resume.pdf")
	cmd := exec.Command(binaryPath, "parse", missing, "--api-key", "test-key")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "file not found")
}

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		name      string
		inputPath string
		outDir    string
		want      string
	}{
		{
			name:      "next to input",
			inputPath: filepath.Join("docs", "resume.pdf"),
			outDir:    "",
			want:      filepath.Join("docs", "resume.json"),
		},
		{
			name:      "into output directory",
			inputPath: filepath.Join("docs", "resume.pdf"),
			outDir:    "out",
			want:      filepath.Join("out", "resume.json"),
		},
		{
			name:      "no extension",
			inputPath: "resume",
			outDir:    "",
			want:      "resume.json",
		},
		{
			name:      "already json",
			inputPath: "resume.json",
			outDir:    "out",
			want:      filepath.Join("out", "resume.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPathFor(tt.inputPath, tt.outDir))
		})
	}
}
