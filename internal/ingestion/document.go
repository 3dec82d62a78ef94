// Package ingestion extracts plain resume text from uploaded documents and
// remote pages.
package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DocumentKind identifies the format text is extracted from.
type DocumentKind string

const (
	// KindPDF is a PDF document
	KindPDF DocumentKind = "pdf"
	// KindDocx is a Word document (OOXML)
	KindDocx DocumentKind = "docx"
	// KindHTML is an HTML page or fragment
	KindHTML DocumentKind = "html"
	// KindText is plain UTF-8 text, including markdown
	KindText DocumentKind = "text"
)

// DetectKind guesses a document kind from the filename extension, falling
// back to content sniffing when the extension is missing or unknown.
func DetectKind(filename string, data []byte) (DocumentKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, true
	case ".docx":
		return KindDocx, true
	case ".html", ".htm":
		return KindHTML, true
	case ".txt", ".text", ".md", ".markdown":
		return KindText, true
	}
	return sniffKind(data)
}

// sniffKind inspects magic bytes and structure to classify unlabeled content.
func sniffKind(data []byte) (DocumentKind, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return KindPDF, true
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return KindDocx, true
	case looksLikeHTML(data):
		return KindHTML, true
	case len(data) > 0 && utf8.Valid(data):
		return KindText, true
	}
	return "", false
}

func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(head)
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!doctype html"))
}

// ExtractText pulls plain text out of a document of the given kind. The
// result is cleaned with CleanText. Documents that cannot be decoded, or that
// decode to nothing, yield an UnreadableError.
func ExtractText(data []byte, kind DocumentKind) (string, error) {
	if len(data) == 0 {
		return "", &UnreadableError{Message: "empty document"}
	}

	switch kind {
	case KindPDF:
		return extractPDFText(data)
	case KindDocx:
		return extractDocxText(data)
	case KindHTML:
		return extractHTMLText(data)
	case KindText:
		if !utf8.Valid(data) {
			return "", &UnreadableError{Message: "text document is not valid UTF-8"}
		}
		text := CleanText(string(data))
		if text == "" {
			return "", &UnreadableError{Message: "document contains no text"}
		}
		return text, nil
	default:
		return "", &UnreadableError{Message: fmt.Sprintf("unsupported document kind %q", kind)}
	}
}
