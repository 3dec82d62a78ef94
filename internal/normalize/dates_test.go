package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantYear int
		wantOK   bool
	}{
		{name: "bare year", input: "2019", wantYear: 2019, wantOK: true},
		{name: "year-month", input: "2021-03", wantYear: 2021, wantOK: true},
		{name: "slash month-year", input: "03/2021", wantYear: 2021, wantOK: true},
		{name: "english month", input: "March 2021", wantYear: 2021, wantOK: true},
		{name: "abbreviated month", input: "Mar 2021", wantYear: 2021, wantOK: true},
		{name: "french month", input: "mars 2021", wantYear: 2021, wantOK: true},
		{name: "french accented month", input: "Février 2020", wantYear: 2020, wantOK: true},
		{name: "full date", input: "2021-03-15", wantYear: 2021, wantOK: true},
		{name: "padded", input: "  2019 ", wantYear: 2019, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "present", input: "present", wantOK: false},
		{name: "free text", input: "during the war", wantOK: false},
		{name: "range is not a start", input: "2019 - 2022", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStartDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantYear, got.Year())
			}
		})
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses spaces", input: "a   b\t c", want: "a b c"},
		{name: "trims", input: "  hello  ", want: "hello"},
		{name: "keeps single line break", input: "line one\nline two", want: "line one\nline two"},
		{name: "collapses blank runs", input: "one\n\n\n\ntwo", want: "one\n\ntwo"},
		{name: "drops trailing blank lines", input: "one\n\n", want: "one"},
		{name: "drops leading blank lines", input: "\n\none", want: "one"},
		{name: "crlf becomes lf", input: "one\r\ntwo", want: "one\ntwo"},
		{name: "non-breaking space", input: "a b", want: "a b"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanString(tt.input))
		})
	}
}

func TestDedupeStrings(t *testing.T) {
	assert.Equal(t, []string{"Go", "Python"}, dedupeStrings([]string{"Go", "Python", "Go"}))
	assert.Equal(t, []string{"Go"}, dedupeStrings([]string{"Go"}))
	assert.Empty(t, dedupeStrings(nil))
}
