// Package types provides type definitions for structured data used throughout the smartcv system.
package types

// StructuredResume is the canonical resume record produced by extraction and
// consumed by rendering. It is created once per request and never persisted.
type StructuredResume struct {
	Personal   Personal     `json:"personal"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []SkillGroup `json:"skills"`
	// Language is the model's guess at the document language ("english" or
	// "french"). It is a hint only; the resolver makes the final call.
	Language string `json:"language,omitempty"`
}

// Personal holds the identity header of a resume. Name is the only field
// required to be non-empty after normalization.
type Personal struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Summary string `json:"summary,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

// Education represents one education entry, most-recent-first in the record.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Description string `json:"description,omitempty"`
}

// Experience represents one employment entry. End is a free-form string and
// may be "present" for a current position.
type Experience struct {
	Employer string   `json:"employer"`
	Title    string   `json:"title"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// SkillGroup is one named category of skills. Groups are kept as an ordered
// slice rather than a map so rendered output is deterministic.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// IsEmpty reports whether the group carries no skills.
func (g SkillGroup) IsEmpty() bool {
	return len(g.Items) == 0
}

// HasExperience reports whether the record has at least one experience entry.
func (r *StructuredResume) HasExperience() bool {
	return len(r.Experience) > 0
}

// HasEducation reports whether the record has at least one education entry.
func (r *StructuredResume) HasEducation() bool {
	return len(r.Education) > 0
}

// HasSkills reports whether any skill group carries at least one item.
func (r *StructuredResume) HasSkills() bool {
	for _, g := range r.Skills {
		if !g.IsEmpty() {
			return true
		}
	}
	return false
}
