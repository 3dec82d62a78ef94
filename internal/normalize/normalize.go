// Package normalize coerces the loosely typed record returned by extraction
// into a schema-conformant StructuredResume. It is the single point in the
// system that consumes untyped data.
package normalize

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"

	"github.com/maelle/smartcv/internal/types"
)

// Normalize shapes a raw mapping into a StructuredResume. Malformed
// sub-entries are dropped and reported as warnings; only a missing or empty
// personal name invalidates the record. The function is pure and idempotent:
// normalizing the raw form of an already normalized record changes nothing.
func Normalize(raw map[string]any) (*types.StructuredResume, []string, error) {
	c := &coercer{}
	shaped := c.shape(raw)

	var record types.StructuredResume
	cfg := &mapstructure.DecoderConfig{
		Result:  &record,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, nil, &DecodeError{Message: "failed to build decoder", Cause: err}
	}
	if err := decoder.Decode(shaped); err != nil {
		return nil, nil, &DecodeError{Message: "record did not decode", Cause: err}
	}

	if record.Personal.Name == "" {
		return nil, c.warnings, &MissingFieldError{Field: "personal.name"}
	}

	// Decoding an absent list leaves a nil slice; the contract promises
	// empty sequences instead.
	if record.Education == nil {
		record.Education = []types.Education{}
	}
	if record.Experience == nil {
		record.Experience = []types.Experience{}
	}
	if record.Skills == nil {
		record.Skills = []types.SkillGroup{}
	}

	sortEducationByStart(record.Education)
	sortExperienceByStart(record.Experience)

	return &record, c.warnings, nil
}

// AsRaw converts a record back into the loose mapping form Normalize accepts.
func AsRaw(record *types.StructuredResume) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, &DecodeError{Message: "failed to marshal record", Cause: err}
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Message: "failed to rebuild raw mapping", Cause: err}
	}
	return raw, nil
}

// Record re-normalizes a typed record. Render requests accept client-edited
// records, so the same trimming, ordering, and required-field rules apply to
// them as to fresh extractions.
func Record(record *types.StructuredResume) (*types.StructuredResume, []string, error) {
	raw, err := AsRaw(record)
	if err != nil {
		return nil, nil, err
	}
	return Normalize(raw)
}
