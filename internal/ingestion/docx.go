package ingestion

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
)

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// extractDocxText unpacks the OOXML body of a .docx file and strips its
// markup. Paragraph and break tags become newlines, tabs stay tabs.
func extractDocxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &UnreadableError{Message: "failed to open DOCX archive", Cause: err}
	}

	var body []byte
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", &UnreadableError{Message: "failed to open DOCX body", Cause: err}
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", &UnreadableError{Message: "failed to read DOCX body", Cause: err}
		}
		break
	}
	if body == nil {
		return "", &UnreadableError{Message: "DOCX archive has no word/document.xml"}
	}

	xml := string(body)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = docxTagPattern.ReplaceAllString(xml, " ")
	xml = xmlEntityReplacer.Replace(xml)

	text := CleanText(xml)
	if text == "" {
		return "", &UnreadableError{Message: "DOCX contains no extractable text"}
	}
	return text, nil
}
