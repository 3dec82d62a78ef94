// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/maelle/smartcv/internal/compile"
	"github.com/maelle/smartcv/internal/ingestion"
	"github.com/maelle/smartcv/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines rune-wise so accented text never splits mid-rune
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of an extracted record.
func (p *Printer) PrintResume(record *types.StructuredResume) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Personal.Name))
	if record.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", record.Personal.Email))
	}
	if record.Personal.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", record.Personal.Phone))
	}
	if record.Personal.Address != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", record.Personal.Address))
	}
	if record.Language != "" {
		sb.WriteString(fmt.Sprintf("Language: %s\n", record.Language))
	}

	if len(record.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(record.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := record.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s", exp.Title, exp.Employer))
			if exp.Start != "" {
				sb.WriteString(fmt.Sprintf(" (%s - %s)", exp.Start, exp.End))
			}
			sb.WriteString("\n")
		}
		if len(record.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experience)-maxItemsToShow))
		}
	}

	if len(record.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		count := min(len(record.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			edu := record.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.Institution))
		}
		if len(record.Education) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Education)-maxItemsToShow))
		}
	}

	if len(record.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		for _, group := range record.Skills {
			sb.WriteString(fmt.Sprintf("  • %s: %d items\n", group.Category, len(group.Items)))
		}
	}

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs normalization warnings, if any.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, warning := range warnings {
		sb.WriteString(fmt.Sprintf("  • %s\n", warning))
	}

	p.printBox("NORMALIZATION WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetadata outputs ingestion metadata for the processed document.
func (p *Printer) PrintMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	if meta.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", meta.Source))
	}
	if meta.Kind != "" {
		sb.WriteString(fmt.Sprintf("Kind:     %s\n", meta.Kind))
	}
	if meta.Platform != "" {
		sb.WriteString(fmt.Sprintf("Platform: %s\n", meta.Platform))
	}
	sb.WriteString(fmt.Sprintf("Chars:    %d\n", meta.Chars))
	sb.WriteString(fmt.Sprintf("Hash:     %s", meta.Hash))

	p.printBox("DOCUMENT", sb.String())
}

// PrintArtifact outputs a summary of a compiled PDF artifact.
func (p *Printer) PrintArtifact(artifact *compile.Artifact) {
	if artifact == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Engine:   %s\n", artifact.Engine))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", len(artifact.PDF)))
	sb.WriteString(fmt.Sprintf("Duration: %s", artifact.Duration.Round(time.Millisecond)))

	p.printBox("PDF ARTIFACT", sb.String())
}
