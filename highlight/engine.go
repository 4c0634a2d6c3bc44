// Package highlight runs highlight passes over a document and schedules them
// relative to document edits.
package highlight

import (
	"context"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/lexer"
	"github.com/fwojciec/kisspad/overlay"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Result is the outcome of one pass.
type Result struct {
	Language kisspad.Language
	Spans    []kisspad.StyleSpan
}

// Engine performs full passes: classify, tokenize from offset 0, then overlay
// error lines. It holds no per-pass state and is safe for concurrent use.
type Engine struct {
	classifier kisspad.Classifier
	tokenizers map[kisspad.Language]kisspad.Tokenizer
	compositor *overlay.Compositor
	tracer     trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the default classifier.
func WithClassifier(c kisspad.Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithTokenizer replaces the tokenizer used for its language.
func WithTokenizer(t kisspad.Tokenizer) Option {
	return func(e *Engine) {
		e.tokenizers[t.Language()] = t
	}
}

// WithTracer records every pass as a span on t.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// NewEngine creates an Engine whose tokenizers and overlay use palette p.
func NewEngine(p kisspad.Palette, opts ...Option) *Engine {
	e := &Engine{
		classifier: lexer.NewClassifier(),
		tokenizers: lexer.All(p),
		compositor: overlay.NewCompositor(p.ErrorBackground),
		tracer:     noop.NewTracerProvider().Tracer("kisspad/highlight"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Background returns the error line background so callers can reuse it.
func (e *Engine) Background() kisspad.ColorID {
	return e.compositor.Background()
}

// Classify returns the language the next pass would use for doc.
func (e *Engine) Classify(doc kisspad.Document) kisspad.Language {
	return e.classifier.Classify(doc.Filename, doc.Text)
}

// Pass highlights doc from scratch and overlays errs.
func (e *Engine) Pass(ctx context.Context, doc kisspad.Document, errs kisspad.ErrorLineSet) Result {
	_, span := e.tracer.Start(ctx, "highlight.pass")
	defer span.End()

	lang := e.Classify(doc)
	tok, ok := e.tokenizers[lang]
	if !ok {
		tok = e.tokenizers[kisspad.LanguageKiss]
	}
	spans := e.compositor.Apply(doc.Text, tok.Tokenize(doc.Text), errs)

	span.SetAttributes(
		attribute.String("language", lang.String()),
		attribute.Int("text.length", len(doc.Text)),
		attribute.Int("error_lines", errs.Len()),
		attribute.Int("spans", len(spans)),
	)
	return Result{Language: lang, Spans: spans}
}
