package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// coercer walks the raw mapping and rebuilds it with exactly the known keys,
// cleaned string leaves, and tolerant shapes. Anything it cannot salvage is
// dropped and recorded as a warning.
type coercer struct {
	warnings []string
}

func (c *coercer) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// shape rebuilds the record mapping field by field. Top-level lookup is by
// exact key; unknown keys are ignored.
func (c *coercer) shape(raw map[string]any) map[string]any {
	return map[string]any{
		"personal":   c.personal(raw["personal"]),
		"education":  c.educationList(raw["education"]),
		"experience": c.experienceList(raw["experience"]),
		"skills":     c.skillGroups(raw["skills"]),
		"language":   strings.ToLower(c.text("language", raw["language"])),
	}
}

func (c *coercer) personal(v any) map[string]any {
	out := map[string]any{}
	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			c.warnf("personal: expected an object, got %T", v)
		}
		return out
	}
	for _, key := range []string{"name", "email", "phone", "address", "summary", "photo"} {
		if raw, present := m[key]; present {
			out[key] = c.text("personal."+key, raw)
		}
	}
	return out
}

func (c *coercer) educationList(v any) []map[string]any {
	entries := c.entryList("education", v)
	out := make([]map[string]any, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			c.warnf("education: dropped entry %d: not an object", i)
			continue
		}
		path := fmt.Sprintf("education[%d]", i)
		shaped := map[string]any{
			"institution": c.text(path+".institution", m["institution"]),
			"degree":      c.text(path+".degree", m["degree"]),
			"field":       c.text(path+".field", m["field"]),
			"start":       c.text(path+".start", m["start"]),
			"end":         c.text(path+".end", m["end"]),
			"description": c.text(path+".description", m["description"]),
		}
		if shaped["institution"] == "" && shaped["degree"] == "" {
			c.warnf("education: dropped entry %d: neither institution nor degree", i)
			continue
		}
		out = append(out, shaped)
	}
	return out
}

func (c *coercer) experienceList(v any) []map[string]any {
	entries := c.entryList("experience", v)
	out := make([]map[string]any, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			c.warnf("experience: dropped entry %d: not an object", i)
			continue
		}
		path := fmt.Sprintf("experience[%d]", i)
		shaped := map[string]any{
			"employer": c.text(path+".employer", m["employer"]),
			"title":    c.text(path+".title", m["title"]),
			"start":    c.text(path+".start", m["start"]),
			"end":      c.text(path+".end", m["end"]),
			"location": c.text(path+".location", m["location"]),
			"bullets":  c.textList(path+".bullets", m["bullets"]),
		}
		if shaped["employer"] == "" && shaped["title"] == "" {
			c.warnf("experience: dropped entry %d: neither employer nor title", i)
			continue
		}
		out = append(out, shaped)
	}
	return out
}

// skillGroups accepts the canonical list of {category, items} objects but
// also the shapes models actually produce: a flat list of strings, a
// category-to-items mapping, or a single string. Loose strings collect into
// an uncategorized group.
func (c *coercer) skillGroups(v any) []map[string]any {
	out := []map[string]any{}
	var loose []string

	appendGroup := func(category string, items []string) {
		if len(items) == 0 {
			return
		}
		out = append(out, map[string]any{"category": category, "items": items})
	}

	switch val := v.(type) {
	case nil:
	case string:
		loose = appendClean(loose, val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendGroup(cleanString(k), c.textList("skills."+k, val[k]))
		}
	case []any:
		for i, entry := range val {
			switch e := entry.(type) {
			case string:
				loose = appendClean(loose, e)
			case map[string]any:
				path := fmt.Sprintf("skills[%d]", i)
				appendGroup(c.text(path+".category", e["category"]), c.textList(path+".items", e["items"]))
			default:
				if s, ok := scalarString(entry); ok {
					loose = appendClean(loose, s)
				} else {
					c.warnf("skills: dropped entry %d: unsupported shape", i)
				}
			}
		}
	default:
		c.warnf("skills: expected a list, got %T", v)
	}

	if len(loose) > 0 {
		appendGroup("", dedupeStrings(loose))
	}
	return out
}

// entryList tolerates a single object where a list is expected.
func (c *coercer) entryList(path string, v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case map[string]any:
		return []any{val}
	default:
		c.warnf("%s: expected a list, got %T", path, v)
		return nil
	}
}

// textList coerces a value into a deduplicated list of cleaned strings.
// A scalar where a list is expected becomes a single-element list.
func (c *coercer) textList(path string, v any) []string {
	var out []string
	switch val := v.(type) {
	case nil:
	case []any:
		for i, entry := range val {
			s, ok := scalarString(entry)
			if !ok {
				c.warnf("%s: dropped entry %d: not text", path, i)
				continue
			}
			out = appendClean(out, s)
		}
	default:
		s, ok := scalarString(v)
		if !ok {
			c.warnf("%s: expected text entries, got %T", path, v)
			break
		}
		out = appendClean(out, s)
	}
	return dedupeStrings(out)
}

// text coerces a scalar leaf to a cleaned string. Non-scalar values are
// dropped with a warning rather than failing the record.
func (c *coercer) text(path string, v any) string {
	if v == nil {
		return ""
	}
	s, ok := scalarString(v)
	if !ok {
		c.warnf("%s: expected text, got %T", path, v)
		return ""
	}
	return cleanString(s)
}

// scalarString renders any scalar as a string. Numbers keep their digits so
// phone-like values survive the trip through JSON.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func appendClean(list []string, s string) []string {
	cleaned := cleanString(s)
	if cleaned == "" {
		return list
	}
	return append(list, cleaned)
}

// cleanString trims and collapses whitespace while preserving intentional
// line breaks. Runs of blank lines collapse to a single one.
func cleanString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, " ", " ")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blanks++
			if len(out) > 0 && blanks == 1 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	// A trailing blank line carries nothing.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// dedupeStrings removes exact duplicates while preserving first occurrence.
func dedupeStrings(list []string) []string {
	if len(list) < 2 {
		return list
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
