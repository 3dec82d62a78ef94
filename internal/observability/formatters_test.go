package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maelle/smartcv/internal/compile"
	"github.com/maelle/smartcv/internal/ingestion"
	"github.com/maelle/smartcv/internal/types"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.StructuredResume{
		Personal: types.Personal{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Address: "San Francisco, CA",
		},
		Experience: []types.Experience{
			{Title: "Senior Engineer", Employer: "Acme Corp", Start: "2019", End: "present"},
			{Title: "Engineer", Employer: "Globex", Start: "2015", End: "2019"},
		},
		Education: []types.Education{
			{Degree: "B.S. Computer Science", Institution: "MIT"},
		},
		Skills: []types.SkillGroup{
			{Category: "Languages", Items: []string{"Go", "Python"}},
		},
		Language: "english",
	}

	p.PrintResume(record)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "Senior Engineer, Acme Corp")
	assert.Contains(t, output, "B.S. Computer Science, MIT")
	assert.Contains(t, output, "Languages: 2 items")
	assert.Contains(t, output, "english")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResume_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.StructuredResume{
		Personal: types.Personal{Name: "Jane Doe"},
	}
	for i := 0; i < 8; i++ {
		record.Experience = append(record.Experience, types.Experience{
			Title: "Engineer", Employer: "Acme",
		})
	}

	p.PrintResume(record)
	output := buf.String()

	assert.Contains(t, output, "... and 3 more")
}

func TestPrintResume_AccentedContentFitsBox(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.StructuredResume{
		Personal: types.Personal{
			Name:    "Jean Dupont",
			Address: strings.Repeat("é", 80),
		},
		Language: "french",
	}

	p.PrintResume(record)
	output := buf.String()

	assert.Contains(t, output, "Jean Dupont")
	assert.Contains(t, output, "...")
	// No replacement characters from a mid-rune split
	assert.NotContains(t, output, "�")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings([]string{"education[2] dropped: not a mapping"})
	output := buf.String()

	assert.Contains(t, output, "NORMALIZATION WARNINGS")
	assert.Contains(t, output, "education[2] dropped")
}

func TestPrintWarnings_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMetadata(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMetadata(&ingestion.Metadata{
		Source:   "resume.pdf",
		Kind:     ingestion.KindPDF,
		Hash:     "abc123",
		Chars:    1042,
		Platform: "github",
	})
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT")
	assert.Contains(t, output, "resume.pdf")
	assert.Contains(t, output, "pdf")
	assert.Contains(t, output, "1042")
	assert.Contains(t, output, "github")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintArtifact(&compile.Artifact{
		PDF:      []byte("%PDF-1.5 fake"),
		Engine:   "tectonic",
		Duration: 1200 * time.Millisecond,
	})
	output := buf.String()

	assert.Contains(t, output, "PDF ARTIFACT")
	assert.Contains(t, output, "tectonic")
	assert.Contains(t, output, "13 bytes")
	assert.Contains(t, output, "1.2s")
}
