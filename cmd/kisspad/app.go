package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/bubbletea"
	"github.com/fwojciec/kisspad/chroma"
	"github.com/fwojciec/kisspad/clipboard"
	"github.com/fwojciec/kisspad/config"
	"github.com/fwojciec/kisspad/diag"
	"github.com/fwojciec/kisspad/fs"
	"github.com/fwojciec/kisspad/fsnotify"
	"github.com/fwojciec/kisspad/highlight"
	"github.com/fwojciec/kisspad/jsonl"
	"github.com/fwojciec/kisspad/lipgloss"
	"github.com/fwojciec/kisspad/log"
	"github.com/fwojciec/kisspad/tracing"
	"golang.org/x/sync/errgroup"
)

// FormatJSONL dumps spans as JSON lines instead of rendering them.
const FormatJSONL = "jsonl"

// DocumentEditor opens a document for interactive editing.
type DocumentEditor interface {
	Edit(ctx context.Context, doc kisspad.Document) error
}

// App encapsulates the application logic for testing.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Config config.Config

	// NewEditor builds the interactive editor. Defaults to the terminal editor.
	NewEditor func(opts ...bubbletea.ModelOption) DocumentEditor
}

// NewApp creates an App writing to stdout and stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		Stdout: stdout,
		Stderr: stderr,
		Config: config.Defaults(),
		NewEditor: func(opts ...bubbletea.ModelOption) DocumentEditor {
			return bubbletea.NewEditor(opts...)
		},
	}
}

func (a *App) theme() (*lipgloss.Theme, error) {
	return lipgloss.ThemeByName(a.Config.Theme)
}

// startTracing creates the tracer provider and returns engine options that
// use it together with its shutdown function.
func (a *App) startTracing(ctx context.Context) ([]highlight.Option, func(), error) {
	provider, err := tracing.NewProvider(ctx, a.Config.Tracing)
	if err != nil {
		return nil, nil, err
	}
	shutdown := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "tracing shutdown failed", err)
		}
	}
	if !provider.Enabled() {
		return nil, shutdown, nil
	}
	return []highlight.Option{highlight.WithTracer(provider.Tracer())}, shutdown, nil
}

// errorLines loads the error lines for file from the configured diagnostics.
func (a *App) errorLines(file string) (kisspad.ErrorLineSet, error) {
	if a.Config.Diagnostics == "" {
		return nil, nil
	}
	return diag.Load(a.Config.Diagnostics, file)
}

// Edit opens path, or an untitled buffer when path is empty, in the editor.
// The file and the diagnostics file are watched for changes.
func (a *App) Edit(ctx context.Context, path string) error {
	theme, err := a.theme()
	if err != nil {
		return err
	}

	var doc kisspad.Document
	if path != "" {
		if doc, err = fs.Load(path); err != nil {
			return err
		}
	}

	engineOpts, shutdown, err := a.startTracing(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithTabWidth(a.Config.TabWidth),
		bubbletea.WithClipboard(clipboard.New(a.Stdout)),
		bubbletea.WithEngineOptions(engineOpts...),
	}
	if a.Config.Diagnostics != "" {
		opts = append(opts, bubbletea.WithDiagnostics(a.Config.Diagnostics))
	}

	var watched []string
	if path != "" {
		watched = append(watched, path)
	}
	if a.Config.Diagnostics != "" {
		watched = append(watched, a.Config.Diagnostics)
	}
	if len(watched) > 0 {
		ch, stop, err := watch(a.Config.WatchDebounce, watched)
		if err != nil {
			log.Warn(log.CatWatch, "file watching disabled", "error", err.Error())
		} else {
			defer stop()
			opts = append(opts, bubbletea.WithWatch(ch))
		}
	}

	return a.NewEditor(opts...).Edit(ctx, doc)
}

func watch(debounce time.Duration, paths []string) (<-chan []string, func(), error) {
	w, err := fsnotify.New(debounce, paths...)
	if err != nil {
		return nil, nil, err
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, nil, err
	}
	return ch, func() { _ = w.Stop() }, nil
}

// RenderOptions controls Render.
type RenderOptions struct {
	Format string
	// OutDir receives one file per input. Empty means Stdout in argument order.
	OutDir string
	// Dump, when set, is a JSONL file the span records of every rendered file
	// are appended to, whatever the format.
	Dump string
}

// maxRenderTurns bounds the loop turns spent on one file. A single pass
// needs one.
const maxRenderTurns = 4

// Render highlights every file and writes it in opts.Format. With an empty
// OutDir, results go to Stdout in argument order; otherwise each file is
// written to OutDir under its base name with the format's extension.
func (a *App) Render(ctx context.Context, paths []string, opts RenderOptions) error {
	if len(paths) == 0 {
		return fmt.Errorf("render: no files given")
	}
	format := opts.Format
	if !validFormat(format) {
		return fmt.Errorf("render: unknown format %q (want one of %s)", format, strings.Join(allFormats(), ", "))
	}

	theme, err := a.theme()
	if err != nil {
		return err
	}
	palette := theme.Palette()
	exporter, err := chroma.NewExporter(palette,
		chroma.WithTabWidth(a.Config.TabWidth),
		chroma.WithLineNumbers(a.Config.Export.LineNumbers),
	)
	if err != nil {
		return err
	}

	engineOpts, shutdown, err := a.startTracing(ctx)
	if err != nil {
		return err
	}
	defer shutdown()
	engine := highlight.NewEngine(palette, engineOpts...)

	outDir := opts.OutDir
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("render: creating output directory: %w", err)
		}
	}

	outputs := make([]bytes.Buffer, len(paths))
	records := make([][]jsonl.Record, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := a.renderFile(ctx, engine, exporter, path, format, &outputs[i])
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			records[i] = recs
			if outDir == "" {
				return nil
			}
			dest := filepath.Join(outDir, outputName(path, format))
			if err := os.WriteFile(dest, outputs[i].Bytes(), 0o644); err != nil {
				return fmt.Errorf("%s: writing output: %w", path, err)
			}
			log.Info(log.CatExport, "rendered", "path", path, "output", dest, "format", format)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if outDir == "" {
		for i := range outputs {
			if _, err := outputs[i].WriteTo(a.Stdout); err != nil {
				return err
			}
		}
	}

	if opts.Dump != "" {
		var all []jsonl.Record
		for _, recs := range records {
			all = append(all, recs...)
		}
		if err := jsonl.NewSaver().Save(opts.Dump, all); err != nil {
			return fmt.Errorf("render: writing span dump: %w", err)
		}
		log.Info(log.CatExport, "span dump appended", "path", opts.Dump, "records", len(all))
	}
	return nil
}

// surfaceFunc adapts a function to kisspad.Surface.
type surfaceFunc func(text string, spans []kisspad.StyleSpan) error

func (f surfaceFunc) Apply(text string, spans []kisspad.StyleSpan) error {
	return f(text, spans)
}

// renderFile highlights path through a session on a private loop, the same
// scheduling path the editor uses, with the output writer as its surface.
// It returns the span records of the applied pass.
func (a *App) renderFile(ctx context.Context, engine *highlight.Engine, exporter *chroma.Exporter, path, format string, w io.Writer) ([]jsonl.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	doc, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	errs, err := a.errorLines(path)
	if err != nil {
		return nil, err
	}

	var applyErr error
	surface := surfaceFunc(func(text string, spans []kisspad.StyleSpan) error {
		if format == FormatJSONL {
			applyErr = jsonl.Encode(w, jsonl.Records(doc, engine.Classify(doc), spans))
		} else {
			applyErr = exporter.Export(w, format, text, spans, errs)
		}
		return applyErr
	})

	loop := highlight.NewLoop()
	session, err := highlight.NewSession(highlight.SessionConfig{
		Engine:     engine,
		Deferrer:   loop,
		Document:   func() kisspad.Document { return doc },
		ErrorLines: func() kisspad.ErrorLineSet { return errs },
		Surface:    surface,
		Context:    ctx,
	})
	if err != nil {
		return nil, err
	}
	session.Changed()
	loop.Drain(maxRenderTurns)

	if applyErr != nil {
		return nil, applyErr
	}
	if session.Passes() == 0 {
		return nil, errors.New("highlight pass was not applied")
	}
	res := session.Last()
	return jsonl.Records(doc, res.Language, res.Spans), nil
}

// Stats summarizes span dumps written by render --dump, one line per
// highlighted file: "file<TAB>language<TAB>N spans<TAB>M on error lines"
// followed by the span count of each kind.
func (a *App) Stats(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("stats: no dumps given")
	}
	loader := jsonl.NewLoader()
	for _, path := range paths {
		records, err := loader.Load(path)
		if err != nil {
			return fmt.Errorf("stats: %s: %w", path, err)
		}
		for _, s := range summarize(records) {
			kinds := make([]string, 0, len(s.kinds))
			for kind, n := range s.kinds {
				kinds = append(kinds, fmt.Sprintf("%s=%d", kind, n))
			}
			sort.Strings(kinds)
			fmt.Fprintf(a.Stdout, "%s\t%s\t%d spans\t%d on error lines\t%s\n",
				s.file, s.language, s.spans, s.errorSpans, strings.Join(kinds, " "))
		}
	}
	return nil
}

type fileSummary struct {
	file       string
	language   string
	spans      int
	errorSpans int
	kinds      map[string]int
}

// summarize groups records by file in order of first appearance. Repeated
// dumps of one file are merged.
func summarize(records []jsonl.Record) []*fileSummary {
	var out []*fileSummary
	byFile := map[string]*fileSummary{}
	for _, r := range records {
		s, ok := byFile[r.File]
		if !ok {
			s = &fileSummary{file: r.File, language: r.Language, kinds: map[string]int{}}
			byFile[r.File] = s
			out = append(out, s)
		}
		s.spans++
		if r.Background != "" {
			s.errorSpans++
		}
		s.kinds[r.Kind]++
	}
	return out
}

// Classify prints the language of each file, one "path<TAB>language" per line.
func (a *App) Classify(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("classify: no files given")
	}
	engine := highlight.NewEngine(kisspad.Palette{})
	for _, path := range paths {
		doc, err := fs.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Stdout, "%s\t%s\n", path, engine.Classify(doc))
	}
	return nil
}

// InitConfig writes the annotated default configuration to path.
func (a *App) InitConfig(path string, force bool) error {
	if path == "" {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("init-config: %s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "wrote %s\n", path)
	return nil
}

func allFormats() []string {
	return append(append([]string{}, chroma.Formats...), FormatJSONL)
}

func validFormat(format string) bool {
	for _, f := range allFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// outputName maps a source file to its rendered file name.
func outputName(path, format string) string {
	ext := map[string]string{
		chroma.FormatHTML:        ".html",
		chroma.FormatTerminal:    ".ansi",
		chroma.FormatTerminal256: ".ansi",
		chroma.FormatText:        ".txt",
		FormatJSONL:              ".jsonl",
	}[format]
	return filepath.Base(path) + ext
}
