package ingestion

import (
	"github.com/maelle/smartcv/internal/fetch"
)

// extractHTMLText reduces an HTML document to readable text, trying the
// generic content selectors before falling back to the whole body.
func extractHTMLText(data []byte) (string, error) {
	extracted, err := fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	if err != nil {
		return "", &UnreadableError{Message: "failed to parse HTML", Cause: err}
	}

	text := CleanText(extracted)
	if text == "" {
		return "", &UnreadableError{Message: "HTML contains no extractable text"}
	}
	return text, nil
}
