package normalize

import (
	"sort"
	"strings"
	"time"

	"github.com/maelle/smartcv/internal/types"
)

// startLayouts are the date shapes accepted for ordering purposes. Dates stay
// free-form strings in the record; parsing only drives sort order.
var startLayouts = []string{
	"2006",
	"2006-01",
	"2006/01",
	"01/2006",
	"January 2006",
	"Jan 2006",
	"2006-01-02",
}

// frenchMonths maps French month names (and common unaccented spellings) to
// the English names the time package understands.
var frenchMonths = map[string]string{
	"janvier":   "january",
	"février":   "february",
	"fevrier":   "february",
	"mars":      "march",
	"avril":     "april",
	"mai":       "may",
	"juin":      "june",
	"juillet":   "july",
	"août":      "august",
	"aout":      "august",
	"septembre": "september",
	"octobre":   "october",
	"novembre":  "november",
	"décembre":  "december",
	"decembre":  "december",
}

// parseStartDate attempts to read a free-form start date. Month names match
// in either language; anything unrecognized reports ok=false.
func parseStartDate(s string) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}

	fields := strings.Fields(s)
	for i, f := range fields {
		if en, ok := frenchMonths[f]; ok {
			fields[i] = en
		}
	}
	s = strings.Join(fields, " ")

	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortEducationByStart orders entries most-recent-first. Ordering is applied
// only when every entry has a parseable start; otherwise the input order is
// the display order.
func sortEducationByStart(entries []types.Education) {
	for _, e := range entries {
		if _, ok := parseStartDate(e.Start); !ok {
			return
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return startOf(entries[i].Start).After(startOf(entries[j].Start))
	})
}

// sortExperienceByStart orders entries most-recent-first under the same rule
// as sortEducationByStart.
func sortExperienceByStart(entries []types.Experience) {
	for _, e := range entries {
		if _, ok := parseStartDate(e.Start); !ok {
			return
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return startOf(entries[i].Start).After(startOf(entries[j].Start))
	})
}

func startOf(s string) time.Time {
	t, _ := parseStartDate(s)
	return t
}
