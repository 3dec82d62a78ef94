package ingestion

import "fmt"

// UnreadableError represents a document whose text cannot be extracted
type UnreadableError struct {
	Message string
	Cause   error
}

func (e *UnreadableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable document: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable document: %s", e.Message)
}

func (e *UnreadableError) Unwrap() error {
	return e.Cause
}
