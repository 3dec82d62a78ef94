package compile

import (
	"fmt"
	"time"
)

// EngineNotFoundError means no usable LaTeX compiler is installed.
type EngineNotFoundError struct {
	Message string
	Cause   error
}

func (e *EngineNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("latex engine not found: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("latex engine not found: %s", e.Message)
}

func (e *EngineNotFoundError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a LaTeX compilation failure.
type CompilationError struct {
	Message    string
	LogExcerpt string
	Cause      error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("latex compilation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("latex compilation failed: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// TimeoutError means the compiler did not finish within the allowed time.
type TimeoutError struct {
	Engine  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("latex compilation timed out after %s (%s)", e.Timeout, e.Engine)
}
