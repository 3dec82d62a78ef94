// Package rendering turns normalized resume records into complete LaTeX documents.
package rendering

import "strings"

// EscapeLaTeX escapes special LaTeX characters in text.
// Special characters: \ { } $ & % # ^ _ ~
// It also rewrites typographic characters that trip pdflatex: en/em dashes,
// oe ligatures, curly quotes, and non-breaking spaces.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		case '–', '—':
			result.WriteString("--")
		case 'œ':
			result.WriteString("oe")
		case 'Œ':
			result.WriteString("OE")
		case '’', '‘':
			result.WriteByte('\'')
		case '“', '”':
			result.WriteByte('"')
		case ' ':
			result.WriteByte(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeLines escapes text and converts embedded newlines into explicit LaTeX
// line breaks, so raw newline characters never reach the document. A blank
// line becomes a paragraph break.
func EscapeLines(text string) string {
	if text == "" {
		return ""
	}

	paragraphs := strings.Split(text, "\n\n")
	for i, paragraph := range paragraphs {
		lines := strings.Split(paragraph, "\n")
		for j, line := range lines {
			lines[j] = EscapeLaTeX(line)
		}
		paragraphs[i] = strings.Join(lines, "\\\\\n")
	}
	return strings.Join(paragraphs, "\n\n")
}
