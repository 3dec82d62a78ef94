// Package extraction turns raw resume text into a validated structured record
// through a single model call.
package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/normalize"
	"github.com/maelle/smartcv/internal/prompts"
	"github.com/maelle/smartcv/internal/schemas"
	"github.com/maelle/smartcv/internal/types"
)

// maxPromptChars caps the resume text sent with the extraction prompt.
const maxPromptChars = 100000

// Orchestrator coordinates the extract flow: one model call, then
// normalization and schema validation of whatever came back.
type Orchestrator struct {
	client llm.Client
}

// NewOrchestrator creates an orchestrator backed by the given client.
func NewOrchestrator(client llm.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Extract converts raw resume text into a normalized record. It performs
// exactly one model call; malformed output is rejected, never patched into a
// partial record. The returned warnings describe sub-entries the normalizer
// dropped or coerced.
func (o *Orchestrator) Extract(ctx context.Context, rawText string, hint language.Language) (*types.StructuredResume, []string, error) {
	prompt := buildExtractionPrompt(rawText, hint)

	responseText, err := o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, nil, &ExtractionError{
			Kind:    KindUpstreamUnavailable,
			Message: "model call failed",
			Cause:   err,
		}
	}

	raw, err := decodeResponse(responseText)
	if err != nil {
		return nil, nil, err
	}

	record, warnings, err := normalize.Normalize(raw)
	if err != nil {
		return nil, nil, &ExtractionError{
			Kind:    KindInvalidRecord,
			Message: "extracted record failed normalization",
			Cause:   err,
		}
	}

	if err := schemas.ValidateResume(record); err != nil {
		return nil, nil, &ExtractionError{
			Kind:    KindInvalidRecord,
			Message: "normalized record failed schema validation",
			Cause:   err,
		}
	}

	return record, warnings, nil
}

// buildExtractionPrompt fills the extraction template with the resume text
// and the language instruction derived from the caller's hint.
func buildExtractionPrompt(rawText string, hint language.Language) string {
	instruction := "If you cannot tell which language the resume uses, default to English."
	switch hint {
	case language.English:
		instruction = "Respond in English and translate content to English if needed."
	case language.French:
		instruction = "Respond in French and translate content to French if needed."
	}

	template := prompts.MustGet("extraction.json", "extract-record")
	return prompts.Format(template, map[string]string{
		"LanguageInstruction": instruction,
		"Text":                truncate(rawText, maxPromptChars),
	})
}

// decodeResponse parses the model response into a raw record map.
func decodeResponse(responseText string) (map[string]any, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, &ExtractionError{
			Kind:    KindMalformedResponse,
			Message: "model response is not valid JSON",
			Cause:   err,
		}
	}
	if raw == nil {
		return nil, &ExtractionError{
			Kind:    KindMalformedResponse,
			Message: "model response is JSON null",
		}
	}

	return raw, nil
}

// truncate trims text to at most max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
