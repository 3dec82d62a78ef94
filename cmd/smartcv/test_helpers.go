package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the smartcv binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "smartcv"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// minimalEnv returns an environment with no model credentials or server
// configuration, so commands fail on missing configuration the same way on
// every machine.
func minimalEnv() []string {
	return []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
	}
}
