package rendering

import "github.com/maelle/smartcv/internal/language"

// Labels is the set of fixed document strings for one output language.
// Label sets are immutable process-wide constants.
type Labels struct {
	Summary    string
	Experience string
	Education  string
	Skills     string
	Present    string
}

var labelSets = map[language.Language]Labels{
	language.English: {
		Summary:    "Summary",
		Experience: "Experience",
		Education:  "Education",
		Skills:     "Skills",
		Present:    "Present",
	},
	language.French: {
		Summary:    "Profil",
		Experience: "Expérience",
		Education:  "Formation",
		Skills:     "Compétences",
		Present:    "Présent",
	},
}

// LabelsFor returns the label set for a language. Unknown values fall back to
// English so binding always has concrete labels.
func LabelsFor(lang language.Language) Labels {
	if labels, ok := labelSets[lang]; ok {
		return labels
	}
	return labelSets[language.English]
}
