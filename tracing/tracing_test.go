package tracing_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/highlight"
	"github.com/fwojciec/kisspad/lipgloss"
	"github.com/fwojciec/kisspad/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := tracing.DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, tracing.ExporterFile, cfg.Exporter)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestNewProvider_Disabled(t *testing.T) {
	t.Parallel()

	p, err := tracing.NewProvider(context.Background(), tracing.Config{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "traces", "passes.jsonl")
	p, err := tracing.NewProvider(context.Background(), tracing.Config{
		Enabled:  true,
		Exporter: tracing.ExporterFile,
		FilePath: path,
	})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	e := highlight.NewEngine(lipgloss.DefaultTheme().Palette(), highlight.WithTracer(p.Tracer()))
	e.Pass(context.Background(), kisspad.Document{Text: "CP 1"}, nil)

	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "highlight.pass")
	assert.Contains(t, string(data), "kiss")
}

func TestNewProvider_Errors(t *testing.T) {
	t.Parallel()

	t.Run("file exporter needs a path", func(t *testing.T) {
		t.Parallel()

		_, err := tracing.NewProvider(context.Background(), tracing.Config{Enabled: true, Exporter: tracing.ExporterFile})
		assert.EqualError(t, err, "tracing: file_path required for file exporter")
	})

	t.Run("unknown exporter", func(t *testing.T) {
		t.Parallel()

		_, err := tracing.NewProvider(context.Background(), tracing.Config{Enabled: true, Exporter: "zipkin"})
		assert.EqualError(t, err, `tracing: unsupported exporter "zipkin"`)
	})
}

func TestNewProvider_NoExporter(t *testing.T) {
	t.Parallel()

	p, err := tracing.NewProvider(context.Background(), tracing.Config{Enabled: true, Exporter: tracing.ExporterNone})
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}
