// Package compile turns LaTeX source into PDF bytes using a locally
// installed engine.
package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout is the maximum time to wait for LaTeX compilation
	DefaultTimeout = 30 * time.Second

	maxExcerptLines = 40
)

// DefaultEngines lists supported compilers in preference order. Tectonic is
// preferred because it fetches missing packages and runs a single pass.
var DefaultEngines = []string{"tectonic", "pdflatex"}

// Options configures a compilation run.
type Options struct {
	// Engine forces a specific compiler. Empty picks the first installed
	// entry of DefaultEngines.
	Engine string
	// Timeout bounds the compiler run. Zero means DefaultTimeout.
	Timeout time.Duration
	// KeepWorkspace retains the scratch directory for debugging.
	KeepWorkspace bool
}

// Artifact is the result of a successful compilation.
type Artifact struct {
	PDF      []byte
	Log      string
	Engine   string
	Duration time.Duration
	// WorkDir is set only when Options.KeepWorkspace was requested.
	WorkDir string
}

// DetectEngine returns the first installed compiler from DefaultEngines.
func DetectEngine() (string, error) {
	for _, engine := range DefaultEngines {
		if _, err := exec.LookPath(engine); err == nil {
			return engine, nil
		}
	}
	return "", &EngineNotFoundError{
		Message: fmt.Sprintf("no LaTeX engine in PATH (tried %s); install tectonic or a TeX distribution",
			strings.Join(DefaultEngines, ", ")),
	}
}

// Compile writes source to a scratch directory, runs the engine, and returns
// the produced PDF. The scratch directory is removed afterwards unless
// Options.KeepWorkspace is set.
func Compile(ctx context.Context, source string, opts *Options) (*Artifact, error) {
	if opts == nil {
		opts = &Options{}
	}

	engine := opts.Engine
	if engine == "" {
		detected, err := DetectEngine()
		if err != nil {
			return nil, err
		}
		engine = detected
	} else if _, err := exec.LookPath(engine); err != nil {
		return nil, &EngineNotFoundError{
			Message: fmt.Sprintf("%s not found in PATH", engine),
			Cause:   err,
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	workDir, err := os.MkdirTemp("", "cv-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create scratch directory", Cause: err}
	}
	if !opts.KeepWorkspace {
		defer func() { _ = os.RemoveAll(workDir) }()
	}

	jobName := uuid.New().String()
	texPath := filepath.Join(workDir, jobName+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, engine, engineArgs(engine, workDir, texPath)...)
	cmd.Dir = workDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, &TimeoutError{Engine: engine, Timeout: timeout}
	}

	logOutput := sanitizeLog(stdout.String()+stderr.String(), workDir)

	pdfPath := filepath.Join(workDir, jobName+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return nil, &CompilationError{
			Message:    "no PDF was produced",
			LogExcerpt: logExcerpt(logOutput),
			Cause:      runErr,
		}
	}

	// A PDF on disk next to a non-zero exit still means broken output;
	// serving half-built documents helps nobody.
	if runErr != nil {
		return nil, &CompilationError{
			Message:    "compiler exited with errors",
			LogExcerpt: logExcerpt(logOutput),
			Cause:      runErr,
		}
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &CompilationError{Message: "failed to read produced PDF", Cause: err}
	}

	artifact := &Artifact{
		PDF:      pdfBytes,
		Log:      logOutput,
		Engine:   engine,
		Duration: duration,
	}
	if opts.KeepWorkspace {
		artifact.WorkDir = workDir
	}
	return artifact, nil
}

// engineArgs builds the command line for a known engine.
func engineArgs(engine, workDir, texPath string) []string {
	switch engine {
	case "tectonic":
		return []string{"-o", workDir, "--keep-logs", texPath}
	default:
		// pdflatex and compatible engines
		return []string{"-interaction=nonstopmode", "-output-directory", workDir, texPath}
	}
}

// sanitizeLog strips the scratch directory path so logs can be returned to
// API callers without leaking server paths.
func sanitizeLog(logOutput, workDir string) string {
	return strings.ReplaceAll(logOutput, workDir, ".")
}

// logExcerpt reduces a full compiler log to the lines a caller needs to see.
// LaTeX marks errors with a leading "!", so those lines plus their immediate
// context are preferred; otherwise the tail of the log is returned.
func logExcerpt(logOutput string) string {
	lines := strings.Split(logOutput, "\n")

	var errorLines []string
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "!") {
			continue
		}
		end := i + 3
		if end > len(lines) {
			end = len(lines)
		}
		errorLines = append(errorLines, lines[i:end]...)
		if len(errorLines) >= maxExcerptLines {
			errorLines = errorLines[:maxExcerptLines]
			break
		}
	}
	if len(errorLines) > 0 {
		return strings.TrimSpace(strings.Join(errorLines, "\n"))
	}

	if len(lines) > maxExcerptLines {
		lines = lines[len(lines)-maxExcerptLines:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
