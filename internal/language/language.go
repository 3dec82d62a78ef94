// Package language decides which of the two supported document languages a
// resume should be rendered in.
package language

import (
	"strings"
	"unicode"

	"github.com/maelle/smartcv/internal/types"
)

// Language identifies one of the supported output languages.
type Language string

const (
	// English is the default language when detection is inconclusive.
	English Language = "english"
	// French is selected only on positive evidence.
	French Language = "french"
)

// String returns the canonical lowercase name of the language.
func (l Language) String() string {
	return string(l)
}

// frenchKeywords and englishKeywords are small stop-word sets used to score
// free text when no explicit language information is available. Scores count
// distinct keywords present, not occurrences.
var frenchKeywords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "des": {}, "une": {}, "un": {}, "de": {}, "du": {},
	"et": {}, "ou": {}, "avec": {}, "pour": {}, "sur": {}, "dans": {},
	"entreprise": {}, "compétences": {}, "expérience": {}, "formation": {}, "diplôme": {},
	"poste": {}, "responsable": {}, "gestion": {}, "développement": {}, "projet": {},
	"équipe": {}, "année": {}, "années": {}, "mois": {}, "depuis": {},
	"janvier": {}, "février": {}, "mars": {}, "avril": {}, "mai": {}, "juin": {},
	"juillet": {}, "août": {}, "septembre": {}, "octobre": {}, "novembre": {}, "décembre": {},
	"actuellement": {}, "présent": {},
}

var englishKeywords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "with": {}, "for": {},
	"at": {}, "in": {}, "on": {}, "to": {}, "of": {},
	"experience": {}, "skills": {}, "education": {}, "summary": {}, "degree": {},
	"position": {}, "manager": {}, "development": {}, "project": {}, "team": {},
	"year": {}, "years": {}, "month": {}, "months": {}, "since": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {}, "june": {},
	"july": {}, "august": {}, "september": {}, "october": {}, "november": {}, "december": {},
	"currently": {}, "present": {},
}

// Parse maps a user- or model-provided language string to a Language.
// It accepts short and long forms in either language; ok is false for
// anything unrecognized.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english", "anglais":
		return English, true
	case "fr", "fra", "french", "français", "francais":
		return French, true
	default:
		return English, false
	}
}

// Resolve picks the output language for a record. An explicit recognized hint
// wins; otherwise the record's own language field is used if recognized;
// otherwise the record's free text is scored against the keyword sets.
// Resolve always returns a concrete value.
func Resolve(record *types.StructuredResume, hint string) Language {
	if lang, ok := Parse(hint); ok {
		return lang
	}
	if record == nil {
		return English
	}
	if lang, ok := Parse(record.Language); ok {
		return lang
	}
	return Detect(recordText(record))
}

// Detect scores text against both keyword sets. French wins only when its
// score is strictly greater; empty text and ties resolve to English.
func Detect(text string) Language {
	frScore, enScore := 0, 0
	for _, word := range tokenize(text) {
		if _, ok := frenchKeywords[word]; ok {
			frScore++
		}
		if _, ok := englishKeywords[word]; ok {
			enScore++
		}
	}
	if frScore > enScore {
		return French
	}
	return English
}

// tokenize lowercases text and splits it into letter runs, so punctuation
// glued to a word does not hide it from the keyword sets. Duplicate words
// collapse to keep scoring a distinct-keyword count.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	seen := make(map[string]struct{}, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		words = append(words, f)
	}
	return words
}

// recordText concatenates the free-text leaves that carry language signal.
func recordText(record *types.StructuredResume) string {
	var sb strings.Builder
	sb.WriteString(record.Personal.Summary)
	sb.WriteByte(' ')
	for _, exp := range record.Experience {
		sb.WriteString(exp.Title)
		sb.WriteByte(' ')
		for _, b := range exp.Bullets {
			sb.WriteString(b)
			sb.WriteByte(' ')
		}
	}
	for _, edu := range record.Education {
		sb.WriteString(edu.Degree)
		sb.WriteByte(' ')
		sb.WriteString(edu.Field)
		sb.WriteByte(' ')
		sb.WriteString(edu.Description)
		sb.WriteByte(' ')
	}
	return sb.String()
}
