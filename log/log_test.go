package log_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kisspad/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share the package-level logger and must not run in parallel.

func TestLog_Format(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nil) })

	log.Info(log.CatPass, "pass done", "language", "kiss", "spans", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO] [pass] pass done")
	assert.Contains(t, out, "language=kiss")
	assert.Contains(t, out, "spans=3")
}

func TestLog_OddFields(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nil) })

	log.Warn(log.CatSched, "odd", "orphan")

	assert.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nil) })

	log.ErrorErr(log.CatPass, "apply failed", errors.New("boom"))
	log.ErrorErr(log.CatPass, "nil error", nil)

	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_MinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nil) })

	log.SetMinLevel(log.LevelWarn)
	log.Info(log.CatUI, "hidden")
	log.Error(log.CatUI, "shown")
	log.SetEnabled(false)
	log.Error(log.CatUI, "disabled")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "disabled")
}

func TestLog_DisabledByDefault(t *testing.T) {
	log.SetOutput(nil)

	assert.NotPanics(t, func() { log.Debug(log.CatConfig, "nowhere") })
}

func TestLog_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kisspad.log")

	cleanup, err := log.Init(path)
	require.NoError(t, err)

	log.Info(log.CatConfig, "hello file")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, log.ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, log.ParseLevel("warning"))
	assert.Equal(t, log.LevelError, log.ParseLevel("error"))
	assert.Equal(t, log.LevelInfo, log.ParseLevel("bogus"))
	assert.Equal(t, "INFO", log.LevelInfo.String())
}
