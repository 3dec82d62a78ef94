package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/types"
)

//go:embed templates/cv.tex
var defaultTemplate string

// DefaultPhoto is the documented placeholder image reference bound when a
// record carries no photo. The template skips the graphic when no file with
// that name exists in the compile workspace.
const DefaultPhoto = "placeholder.png"

// TemplateData is the root structure handed to the LaTeX template. All free
// text in it is raw normalized text; escaping happens inside the template so
// each leaf is escaped exactly once.
type TemplateData struct {
	Labels  Labels
	Name    string
	Contact string
	Summary string
	// Photo is a file reference, not free text, and binds verbatim.
	Photo      string
	Experience []ExperienceEntry
	Education  []EducationEntry
	Skills     []SkillLine
}

// ExperienceEntry is one employment block in template order.
type ExperienceEntry struct {
	Title     string
	Employer  string
	Location  string
	DateRange string
	Bullets   []string
}

// EducationEntry is one education block. Headline joins degree and field.
type EducationEntry struct {
	Headline    string
	Institution string
	DateRange   string
	Description string
}

// SkillLine is one rendered skill group.
type SkillLine struct {
	Category  string
	ItemsLine string
}

// Binder renders StructuredResume records into complete LaTeX documents.
// It performs no compilation or file I/O on its own.
type Binder struct {
	tmpl *template.Template
}

// NewBinder builds a Binder on the embedded default template.
func NewBinder() (*Binder, error) {
	return newBinder("cv", defaultTemplate)
}

// NewBinderFromFile builds a Binder from a custom template file.
func NewBinderFromFile(path string) (*Binder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", path),
			Cause:   err,
		}
	}
	return newBinder(filepath.Base(path), string(content))
}

// newBinder parses template source with the escape functions bound.
// Delimiters are << and >> so template actions never collide with LaTeX
// braces.
func newBinder(name, source string) (*Binder, error) {
	tmpl, err := template.New(name).Delims("<<", ">>").Funcs(template.FuncMap{
		"escape":      EscapeLaTeX,
		"escapeLines": EscapeLines,
	}).Parse(source)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return &Binder{tmpl: tmpl}, nil
}

// Bind maps a normalized record and a resolved language onto the template
// and returns the complete LaTeX source. Sections with no content emit
// nothing, headings included.
func (b *Binder) Bind(record *types.StructuredResume, lang language.Language) (string, error) {
	if record == nil {
		return "", &RenderError{Message: "record is nil"}
	}

	data := buildTemplateData(record, lang)

	var result strings.Builder
	if err := b.tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// buildTemplateData shapes the record for the template: contact line joined,
// date ranges formatted, empty skill groups dropped, placeholder photo bound.
func buildTemplateData(record *types.StructuredResume, lang language.Language) *TemplateData {
	labels := LabelsFor(lang)

	photo := record.Personal.Photo
	if photo == "" {
		photo = DefaultPhoto
	}

	experience := make([]ExperienceEntry, 0, len(record.Experience))
	for _, exp := range record.Experience {
		experience = append(experience, ExperienceEntry{
			Title:     exp.Title,
			Employer:  exp.Employer,
			Location:  exp.Location,
			DateRange: formatDateRange(exp.Start, exp.End, labels.Present),
			Bullets:   exp.Bullets,
		})
	}

	education := make([]EducationEntry, 0, len(record.Education))
	for _, edu := range record.Education {
		education = append(education, EducationEntry{
			Headline:    joinNonEmpty(", ", edu.Degree, edu.Field),
			Institution: edu.Institution,
			DateRange:   formatDateRange(edu.Start, edu.End, labels.Present),
			Description: edu.Description,
		})
	}

	skills := make([]SkillLine, 0, len(record.Skills))
	for _, group := range record.Skills {
		if group.IsEmpty() {
			continue
		}
		skills = append(skills, SkillLine{
			Category:  group.Category,
			ItemsLine: strings.Join(group.Items, ", "),
		})
	}

	return &TemplateData{
		Labels:     labels,
		Name:       record.Personal.Name,
		Contact:    joinNonEmpty(" | ", record.Personal.Email, record.Personal.Phone, record.Personal.Address),
		Summary:    record.Personal.Summary,
		Photo:      photo,
		Experience: experience,
		Education:  education,
		Skills:     skills,
	}
}

// formatDateRange renders "start -- end", substituting the Present label for
// current positions. Either side may be absent.
func formatDateRange(start, end, presentLabel string) string {
	if isCurrent(end) {
		end = presentLabel
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " -- " + end
	}
}

// isCurrent recognizes the end-date spellings that mean "still there" in
// either supported language.
func isCurrent(end string) bool {
	switch strings.ToLower(strings.TrimSpace(end)) {
	case "present", "current", "présent", "aujourd'hui", "actuellement":
		return true
	default:
		return false
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
