package extraction

import (
	"context"
	"strings"

	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/prompts"
)

// maxSummaryChars caps the resume text sent with the summary prompt.
const maxSummaryChars = 8000

// DraftSummary proposes a 2-3 sentence profile summary in the given language.
// It is a separate model call from Extract, used when the extracted record
// carries no summary of its own. It never fills required fields.
func (o *Orchestrator) DraftSummary(ctx context.Context, rawText string, lang language.Language) (string, error) {
	template := prompts.MustGet("summary.json", "draft-summary")
	prompt := prompts.Format(template, map[string]string{
		"Language": languageName(lang),
		"Text":     truncate(rawText, maxSummaryChars),
	})

	summary, err := o.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &ExtractionError{
			Kind:    KindUpstreamUnavailable,
			Message: "summary call failed",
			Cause:   err,
		}
	}

	return strings.TrimSpace(summary), nil
}

func languageName(lang language.Language) string {
	if lang == language.French {
		return "French"
	}
	return "English"
}
