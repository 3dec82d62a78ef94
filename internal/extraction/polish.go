package extraction

import (
	"context"
	"strings"

	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/prompts"
)

// PolishDocument asks the model to tighten a bound LaTeX document without
// changing its structure. The caller keeps the original source and falls back
// to it when the polished source does not compile.
func (o *Orchestrator) PolishDocument(ctx context.Context, source string, lang language.Language) (string, error) {
	key := "polish-english"
	if lang == language.French {
		key = "polish-french"
	}

	template := prompts.MustGet("polish.json", key)
	prompt := prompts.Format(template, map[string]string{
		"Document": source,
	})

	polished, err := o.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &ExtractionError{
			Kind:    KindUpstreamUnavailable,
			Message: "polish call failed",
			Cause:   err,
		}
	}

	polished = stripLatexFence(polished)
	if polished == "" || !strings.Contains(polished, `\documentclass`) {
		return "", &ExtractionError{
			Kind:    KindMalformedResponse,
			Message: "polished output is not a complete LaTeX document",
		}
	}

	return polished, nil
}

// stripLatexFence removes markdown fences models wrap LaTeX output in.
func stripLatexFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```latex")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
