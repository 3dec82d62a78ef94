package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelle/smartcv/internal/types"
)

func sampleRaw() map[string]any {
	return map[string]any{
		"personal": map[string]any{
			"name":    "  Jane   Doe ",
			"email":   "jane@example.com",
			"phone":   float64(612345678),
			"summary": "Platform  engineer.\n\n\nShips things.",
		},
		"education": []any{
			map[string]any{"institution": "MIT", "degree": "BSc", "field": "CS", "start": "2015", "end": "2019"},
		},
		"experience": []any{
			map[string]any{
				"employer": "Acme",
				"title":    "Engineer",
				"start":    "2019",
				"end":      "present",
				"bullets":  []any{"Built the platform", "Built the platform", "  ", "Ran on-call"},
			},
		},
		"skills":   []any{map[string]any{"category": "Languages", "items": []any{"Go", "Python", "Go"}}},
		"language": "English",
	}
}

func TestNormalize_WellFormedRecord(t *testing.T) {
	record, warnings, err := Normalize(sampleRaw())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "Jane Doe", record.Personal.Name)
	assert.Equal(t, "612345678", record.Personal.Phone, "numeric phone should coerce to its digits")
	assert.Equal(t, "Platform engineer.\n\nShips things.", record.Personal.Summary,
		"whitespace collapses but the paragraph break survives")
	assert.Equal(t, "english", record.Language)

	require.Len(t, record.Experience, 1)
	assert.Equal(t, []string{"Built the platform", "Ran on-call"}, record.Experience[0].Bullets,
		"bullets should deduplicate and drop blanks")

	require.Len(t, record.Skills, 1)
	assert.Equal(t, []string{"Go", "Python"}, record.Skills[0].Items)
}

func TestNormalize_Idempotent(t *testing.T) {
	first, _, err := Normalize(sampleRaw())
	require.NoError(t, err)

	raw, err := AsRaw(first)
	require.NoError(t, err)

	second, warnings, err := Normalize(raw)
	require.NoError(t, err)
	assert.Empty(t, warnings, "re-normalizing a normalized record should be clean")
	assert.Equal(t, first, second)
}

func TestNormalize_MissingName(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "empty record", raw: map[string]any{}},
		{name: "nil personal", raw: map[string]any{"personal": nil}},
		{name: "personal without name", raw: map[string]any{"personal": map[string]any{"email": "x@y.z"}}},
		{name: "blank name", raw: map[string]any{"personal": map[string]any{"name": "   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.raw)
			require.Error(t, err)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "personal.name", missing.Field)
		})
	}
}

func TestNormalize_SortsByStartDescending(t *testing.T) {
	raw := map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
		"experience": []any{
			map[string]any{"employer": "One", "title": "A", "start": "2019"},
			map[string]any{"employer": "Two", "title": "B", "start": "2022"},
			map[string]any{"employer": "Three", "title": "C", "start": "2015"},
		},
	}

	record, _, err := Normalize(raw)
	require.NoError(t, err)

	got := make([]string, len(record.Experience))
	for i, exp := range record.Experience {
		got[i] = exp.Start
	}
	assert.Equal(t, []string{"2022", "2019", "2015"}, got)
}

func TestNormalize_UnparseableDatePreservesOrder(t *testing.T) {
	raw := map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
		"experience": []any{
			map[string]any{"employer": "One", "title": "A", "start": "2019"},
			map[string]any{"employer": "Two", "title": "B", "start": "during the war"},
			map[string]any{"employer": "Three", "title": "C", "start": "2022"},
		},
	}

	record, _, err := Normalize(raw)
	require.NoError(t, err)

	got := make([]string, len(record.Experience))
	for i, exp := range record.Experience {
		got[i] = exp.Employer
	}
	assert.Equal(t, []string{"One", "Two", "Three"}, got,
		"an unparseable start date should leave input order untouched")
}

func TestNormalize_DropsMalformedEntriesWithWarning(t *testing.T) {
	raw := map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
		"experience": []any{
			map[string]any{"employer": "Acme", "title": "Engineer", "bullets": []any{"Good bullet", map[string]any{"oops": true}}},
			"just a string",
		},
		"education": []any{
			map[string]any{"description": "no institution or degree"},
		},
	}

	record, warnings, err := Normalize(raw)
	require.NoError(t, err, "malformed sub-entries must not void the record")

	require.Len(t, record.Experience, 1)
	assert.Equal(t, []string{"Good bullet"}, record.Experience[0].Bullets)
	assert.Empty(t, record.Education)
	assert.NotEmpty(t, warnings)
}

func TestNormalize_ScalarWhereListExpected(t *testing.T) {
	raw := map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
		"experience": map[string]any{
			"employer": "Acme",
			"title":    "Engineer",
			"bullets":  "Did one thing well",
		},
	}

	record, _, err := Normalize(raw)
	require.NoError(t, err)

	require.Len(t, record.Experience, 1, "a single object should act as a one-element list")
	assert.Equal(t, []string{"Did one thing well"}, record.Experience[0].Bullets,
		"a scalar bullet should act as a one-element list")
}

func TestNormalize_SkillShapes(t *testing.T) {
	tests := []struct {
		name   string
		skills any
		want   []types.SkillGroup
	}{
		{
			name:   "canonical groups",
			skills: []any{map[string]any{"category": "Languages", "items": []any{"Go"}}},
			want:   []types.SkillGroup{{Category: "Languages", Items: []string{"Go"}}},
		},
		{
			name:   "flat list of strings",
			skills: []any{"Go", "Python"},
			want:   []types.SkillGroup{{Category: "", Items: []string{"Go", "Python"}}},
		},
		{
			name:   "category mapping",
			skills: map[string]any{"Tools": []any{"Docker"}, "Languages": []any{"Go"}},
			want: []types.SkillGroup{
				{Category: "Languages", Items: []string{"Go"}},
				{Category: "Tools", Items: []string{"Docker"}},
			},
		},
		{
			name:   "single string",
			skills: "Go",
			want:   []types.SkillGroup{{Category: "", Items: []string{"Go"}}},
		},
		{
			name:   "group without items is dropped",
			skills: []any{map[string]any{"category": "Empty"}},
			want:   []types.SkillGroup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{
				"personal": map[string]any{"name": "Jane Doe"},
				"skills":   tt.skills,
			}
			record, _, err := Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Skills)
		})
	}
}

func TestNormalize_EmptyListsAreNeverNil(t *testing.T) {
	record, _, err := Normalize(map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
	})
	require.NoError(t, err)

	assert.NotNil(t, record.Education)
	assert.NotNil(t, record.Experience)
	assert.NotNil(t, record.Skills)
	assert.Empty(t, record.Education)
}

func TestRecord_ReappliesRules(t *testing.T) {
	edited := &types.StructuredResume{
		Personal: types.Personal{Name: "  Jane Doe  "},
		Experience: []types.Experience{
			{Employer: "Old", Title: "A", Start: "2010"},
			{Employer: "New", Title: "B", Start: "2020"},
		},
	}

	record, _, err := Record(edited)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.Personal.Name)
	assert.Equal(t, "New", record.Experience[0].Employer, "client-edited records get re-sorted")
}

func TestRecord_MissingNameStillFatal(t *testing.T) {
	_, _, err := Record(&types.StructuredResume{})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
}
