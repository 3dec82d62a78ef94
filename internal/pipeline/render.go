package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/maelle/smartcv/internal/compile"
	"github.com/maelle/smartcv/internal/extraction"
	"github.com/maelle/smartcv/internal/language"
	"github.com/maelle/smartcv/internal/llm"
	"github.com/maelle/smartcv/internal/logger"
	"github.com/maelle/smartcv/internal/normalize"
	"github.com/maelle/smartcv/internal/observability"
	"github.com/maelle/smartcv/internal/rendering"
	"github.com/maelle/smartcv/internal/schemas"
	"github.com/maelle/smartcv/internal/types"
)

// RenderOptions configures rendering a structured record into a PDF.
type RenderOptions struct {
	// LanguageHint overrides the record's own language when recognized.
	LanguageHint string
	// TemplatePath points at an alternative LaTeX template; empty uses the
	// embedded default.
	TemplatePath string
	// Polish runs one model pass that tightens wording in the bound document
	// before compilation. It needs a model client.
	Polish bool

	// Engine forces a LaTeX engine; empty auto-detects.
	Engine string
	// CompileTimeout bounds the compiler run. Zero means compile.DefaultTimeout.
	CompileTimeout time.Duration
	// KeepWorkspace retains the compile scratch directory for debugging.
	KeepWorkspace bool

	// APIKey authenticates the model client built when Polish is set and
	// Client is nil.
	APIKey string
	// Client overrides the model client used for the polish pass.
	Client llm.Client
	// Verbose prints a summary box for the produced artifact.
	Verbose bool
	// Logger receives structured progress events; nil disables them.
	Logger *zap.Logger
}

// RenderResume normalizes and validates a record, binds it into the LaTeX
// template in the resolved language, and compiles it to PDF. With Polish set
// the bound document goes through one model pass first; when the polished
// source fails to compile, the unpolished source is compiled instead.
func RenderResume(ctx context.Context, record *types.StructuredResume, opts RenderOptions) (*compile.Artifact, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if record == nil {
		return nil, fmt.Errorf("no record to render")
	}

	// Render requests accept client-edited records, so the record goes
	// through the same normalization and schema gate as fresh extractions.
	record, warnings, err := normalize.Record(record)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateResume(record); err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		log.Warn("normalization dropped entries", zap.Strings("warnings", warnings))
	}

	lang := language.Resolve(record, opts.LanguageHint)

	var binder *rendering.Binder
	if opts.TemplatePath != "" {
		binder, err = rendering.NewBinderFromFile(opts.TemplatePath)
	} else {
		binder, err = rendering.NewBinder()
	}
	if err != nil {
		return nil, err
	}

	source, err := binder.Bind(record, lang)
	if err != nil {
		return nil, err
	}

	candidates := []string{source}
	if opts.Polish {
		polished, err := polishSource(ctx, source, lang, opts)
		if err != nil {
			log.Warn("polish pass failed, keeping the bound source", zap.Error(err))
		} else {
			candidates = []string{polished, source}
		}
	}

	compileOpts := &compile.Options{
		Engine:        opts.Engine,
		Timeout:       opts.CompileTimeout,
		KeepWorkspace: opts.KeepWorkspace,
	}

	var artifact *compile.Artifact
	for i, candidate := range candidates {
		artifact, err = compile.Compile(ctx, candidate, compileOpts)
		if err == nil {
			break
		}
		var compErr *compile.CompilationError
		if i < len(candidates)-1 && errors.As(err, &compErr) {
			log.Warn("polished source failed to compile, falling back to the bound source",
				zap.String("excerpt", logger.TruncateForLog(compErr.LogExcerpt, 400)))
			continue
		}
		return nil, err
	}

	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintArtifact(artifact)
	}
	log.Info("resume rendered",
		zap.String("engine", artifact.Engine),
		zap.String("language", lang.String()),
		zap.Int("bytes", len(artifact.PDF)),
		zap.Duration("duration", artifact.Duration))

	return artifact, nil
}

// polishSource runs the optional wording pass over the bound document.
func polishSource(ctx context.Context, source string, lang language.Language, opts RenderOptions) (string, error) {
	client := opts.Client
	if client == nil {
		created, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return "", fmt.Errorf("failed to create model client: %w", err)
		}
		defer func() { _ = created.Close() }()
		client = created
	}
	return extraction.NewOrchestrator(client).PolishDocument(ctx, source, lang)
}
