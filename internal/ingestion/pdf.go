package ingestion

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDFText reads every page of a PDF and concatenates its plain text.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &UnreadableError{Message: "failed to open PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &UnreadableError{Message: "failed to extract PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &UnreadableError{Message: "failed to read PDF text stream", Cause: err}
	}

	text := CleanText(buf.String())
	if text == "" {
		return "", &UnreadableError{Message: "PDF contains no extractable text"}
	}
	return text, nil
}
