// Package pipeline wires ingestion, extraction, rendering and compilation
// into the operations the CLI and the HTTP server expose.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maelle/smartcv/internal/extraction"
	"github.com/maelle/smartcv/internal/ingestion"
	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/logger"
	"github.com/maelle/smartcv/internal/observability"
	"github.com/maelle/smartcv/internal/types"
)

// ExtractOptions configures a single extraction run. One of Data, Text, Path
// or URL must be set; when several are set the first in that order wins.
type ExtractOptions struct {
	// Data is an in-memory document, as received by an upload endpoint.
	// Filename guides format detection.
	Data     []byte
	Filename string
	// Text is inline resume text, already in hand.
	Text string
	// Path points at a local resume document (PDF, DOCX, HTML or plain text).
	Path string
	// URL imports the resume from a public web page.
	URL string

	// LanguageHint forces the output language when recognized ("en", "fr", ...).
	LanguageHint string
	// DraftSummary proposes a short professional summary when the document has
	// none. It costs one extra model call and never fills required fields.
	DraftSummary bool

	// APIKey authenticates the model client built when Client is nil.
	APIKey string
	// UseBrowser allows the headless-browser fallback for URL imports.
	UseBrowser bool
	// Verbose prints human-readable progress boxes to stdout.
	Verbose bool
	// Timeout bounds the whole run. Zero means no pipeline-level deadline.
	Timeout time.Duration

	// Client overrides the model client; nil builds a Gemini client from APIKey.
	Client llm.Client
	// Logger receives structured progress events; nil disables them.
	Logger *zap.Logger
}

// ExtractResult is the outcome of a successful extraction. Its JSON form is
// the parse response body served by the HTTP API.
type ExtractResult struct {
	Record   *types.StructuredResume `json:"resume"`
	Warnings []string                `json:"warnings"`
	Language language.Language       `json:"language"`
	// Source describes the ingested document; nil when Text was passed inline.
	Source *ingestion.Metadata `json:"source,omitempty"`
}

// ExtractResume ingests one resume document, extracts a structured record
// from it, and resolves the output language. Warnings carry everything that
// was dropped or could not be honored without invalidating the record.
func ExtractResume(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	text, meta, err := resolveInput(ctx, &opts)
	if err != nil {
		return nil, err
	}
	log.Debug("document ingested",
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, 120)))

	printer := observability.NewPrinter(os.Stdout)
	if opts.Verbose && meta != nil {
		printer.PrintMetadata(meta)
	}

	client := opts.Client
	if client == nil {
		created, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		defer func() { _ = created.Close() }()
		client = created
	}

	var warnings []string
	var hint language.Language
	if opts.LanguageHint != "" {
		parsed, ok := language.Parse(opts.LanguageHint)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized language %q, detecting from content", opts.LanguageHint))
		} else {
			hint = parsed
		}
	}

	orchestrator := extraction.NewOrchestrator(client)
	record, extractWarnings, err := orchestrator.Extract(ctx, text, hint)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, extractWarnings...)

	lang := language.Resolve(record, opts.LanguageHint)
	record.Language = lang.String()

	if opts.DraftSummary && strings.TrimSpace(record.Personal.Summary) == "" {
		summary, err := orchestrator.DraftSummary(ctx, text, lang)
		if err != nil {
			log.Warn("summary drafting failed", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("summary drafting failed: %v", err))
		} else {
			record.Personal.Summary = summary
		}
	}

	// The parse response promises a warnings array, not null.
	if warnings == nil {
		warnings = []string{}
	}

	if opts.Verbose {
		printer.PrintResume(record)
		printer.PrintWarnings(warnings)
	}
	log.Info("resume extracted",
		zap.String("name", record.Personal.Name),
		zap.String("language", lang.String()),
		zap.Int("warnings", len(warnings)))

	return &ExtractResult{
		Record:   record,
		Warnings: warnings,
		Language: lang,
		Source:   meta,
	}, nil
}

// resolveInput turns whichever input was set into cleaned resume text.
func resolveInput(ctx context.Context, opts *ExtractOptions) (string, *ingestion.Metadata, error) {
	switch {
	case len(opts.Data) > 0:
		return ingestion.IngestBytes(opts.Data, opts.Filename)
	case strings.TrimSpace(opts.Text) != "":
		return ingestion.CleanText(opts.Text), nil, nil
	case opts.Path != "":
		return ingestion.IngestFromFile(opts.Path)
	case opts.URL != "":
		return ingestion.IngestFromURL(ctx, opts.URL, opts.UseBrowser, opts.Verbose)
	default:
		return "", nil, fmt.Errorf("no input: provide resume text, a file path or a URL")
	}
}
