package extraction

import "fmt"

// ErrorKind classifies an extraction failure for callers that map errors to
// transport responses or retry decisions.
type ErrorKind string

const (
	// KindUpstreamUnavailable marks transport or provider failures; the input
	// may succeed on retry.
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// KindMalformedResponse marks a model response that is not valid JSON.
	// Nothing is salvaged from a malformed response.
	KindMalformedResponse ErrorKind = "malformed_response"
	// KindInvalidRecord marks a response that decoded but failed
	// normalization or schema validation.
	KindInvalidRecord ErrorKind = "invalid_record"
)

// ExtractionError represents a failure in the extract flow
type ExtractionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
