package highlight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/highlight"
	"github.com/fwojciec/kisspad/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// buffer is a minimal live document that notifies its session on edits.
type buffer struct {
	text     string
	filename string
	errs     kisspad.ErrorLineSet
	session  *highlight.Session
}

func (b *buffer) insert(s string) {
	b.text += s
	b.session.Changed()
}

func (b *buffer) doc() kisspad.Document {
	return kisspad.Document{Text: b.text, Filename: b.filename}
}

type applied struct {
	text  string
	spans []kisspad.StyleSpan
}

func newSession(t *testing.T, b *buffer, surface kisspad.Surface) (*highlight.Session, *highlight.Loop) {
	t.Helper()
	loop := highlight.NewLoop()
	s, err := highlight.NewSession(highlight.SessionConfig{
		Engine:     highlight.NewEngine(palette),
		Deferrer:   loop,
		Document:   b.doc,
		ErrorLines: func() kisspad.ErrorLineSet { return b.errs },
		Surface:    surface,
	})
	require.NoError(t, err)
	b.session = s
	return s, loop
}

func recordingSurface(out *[]applied) *mock.Surface {
	return &mock.Surface{
		ApplyFn: func(text string, spans []kisspad.StyleSpan) error {
			*out = append(*out, applied{text, spans})
			return nil
		},
	}
}

func TestSession_DefersPass(t *testing.T) {
	t.Parallel()

	var got []applied
	b := &buffer{}
	s, loop := newSession(t, b, recordingSurface(&got))

	b.insert("A 1")

	assert.Empty(t, got, "pass must not run inside the notification")
	assert.Equal(t, highlight.PassScheduled, s.State())

	loop.Turn()

	require.Len(t, got, 1)
	assert.Equal(t, "A 1", got[0].text)
	assert.Equal(t, highlight.Idle, s.State())
}

func TestSession_CoalescesMutations(t *testing.T) {
	t.Parallel()

	var got []applied
	b := &buffer{}
	s, loop := newSession(t, b, recordingSurface(&got))

	b.insert("PRINT X\n")
	b.insert("INPUT Y\n")
	b.insert("LET Z=1")

	assert.Equal(t, 1, loop.Pending())
	loop.Drain(10)

	require.Len(t, got, 1)
	assert.Equal(t, "PRINT X\nINPUT Y\nLET Z=1", got[0].text)
	assert.Equal(t, 1, s.Passes())
	assert.Equal(t, kisspad.LanguageBasic, s.Last().Language)
}

func TestSession_ReadsLatestStateAtExecution(t *testing.T) {
	t.Parallel()

	var got []applied
	b := &buffer{}
	s, loop := newSession(t, b, recordingSurface(&got))

	b.insert("+ +\n- -")
	b.filename = "prog.bf"
	b.errs = kisspad.NewErrorLineSet(2)
	loop.Turn()

	require.Len(t, got, 1)
	assert.Equal(t, kisspad.LanguageBrainfuck, s.Last().Language)
	a, _ := kisspad.StyleAt(got[0].spans, 4)
	assert.Equal(t, kisspad.KindCommand, a.Kind)
	assert.Equal(t, palette.ErrorBackground, a.Background)
}

func TestSession_EditsAfterPassScheduleAgain(t *testing.T) {
	t.Parallel()

	var got []applied
	b := &buffer{}
	_, loop := newSession(t, b, recordingSurface(&got))

	b.insert("A")
	loop.Turn()
	b.insert("B")
	loop.Turn()

	require.Len(t, got, 2)
	assert.Equal(t, "AB", got[1].text)
}

func TestSession_IgnoresChangesRaisedWhileApplying(t *testing.T) {
	t.Parallel()

	b := &buffer{}
	applies := 0
	surface := &mock.Surface{
		ApplyFn: func(text string, spans []kisspad.StyleSpan) error {
			applies++
			b.session.Changed()
			return nil
		},
	}
	s, loop := newSession(t, b, surface)

	b.insert("X 1")
	turns := loop.Drain(10)

	assert.Equal(t, 1, turns)
	assert.Equal(t, 1, applies)
	assert.Equal(t, highlight.Idle, s.State())
}

func TestSession_FailedApplyKeepsPreviousResult(t *testing.T) {
	t.Parallel()

	b := &buffer{}
	fail := false
	surface := &mock.Surface{
		ApplyFn: func(text string, spans []kisspad.StyleSpan) error {
			if fail {
				return errors.New("surface gone")
			}
			return nil
		},
	}
	s, _ := newSession(t, b, surface)

	b.text = "A"
	b.session.Changed()
	require.NoError(t, s.RunPass(context.Background()))
	previous := s.Last()

	fail = true
	b.insert("\n#")
	err := s.RunPass(context.Background())

	assert.EqualError(t, err, "surface gone")
	assert.Equal(t, previous, s.Last())
	assert.Equal(t, 1, s.Passes())
	assert.Equal(t, highlight.Idle, s.State())
}

func TestSession_RecoversSurfacePanic(t *testing.T) {
	t.Parallel()

	b := &buffer{}
	surface := &mock.Surface{
		ApplyFn: func(text string, spans []kisspad.StyleSpan) error {
			panic("render exploded")
		},
	}
	s, _ := newSession(t, b, surface)

	b.insert("A")
	var err error
	require.NotPanics(t, func() { err = s.RunPass(context.Background()) })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "render exploded")
	assert.Equal(t, 0, s.Passes())

	// The session keeps working after a failure.
	surface.ApplyFn = func(string, []kisspad.StyleSpan) error { return nil }
	b.insert("B")
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 1, s.Passes())
}

func TestSession_RunPassWithoutRequestIsNoop(t *testing.T) {
	t.Parallel()

	var got []applied
	b := &buffer{}
	s, _ := newSession(t, b, recordingSurface(&got))

	require.NoError(t, s.RunPass(context.Background()))
	assert.Empty(t, got)
}

func TestNewSession_Validation(t *testing.T) {
	t.Parallel()

	engine := highlight.NewEngine(palette)
	doc := func() kisspad.Document { return kisspad.Document{} }
	surface := &mock.Surface{}

	cases := []struct {
		name string
		cfg  highlight.SessionConfig
	}{
		{"missing engine", highlight.SessionConfig{Deferrer: highlight.NewLoop(), Document: doc, Surface: surface}},
		{"missing deferrer", highlight.SessionConfig{Engine: engine, Document: doc, Surface: surface}},
		{"missing document", highlight.SessionConfig{Engine: engine, Deferrer: highlight.NewLoop(), Surface: surface}},
		{"missing surface", highlight.SessionConfig{Engine: engine, Deferrer: highlight.NewLoop(), Document: doc}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := highlight.NewSession(tc.cfg)
			assert.Error(t, err)
		})
	}

	s, err := highlight.NewSession(highlight.SessionConfig{
		Engine: engine, Deferrer: highlight.NewLoop(), Document: doc, Surface: surface,
	})
	require.NoError(t, err)
	assert.Equal(t, palette.ErrorBackground, s.Background())
}

func TestSession_DeferredPassUsesConfiguredContext(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "render")
	loop := highlight.NewLoop()
	var out []applied
	s, err := highlight.NewSession(highlight.SessionConfig{
		Engine:   highlight.NewEngine(palette, highlight.WithTracer(tracer)),
		Deferrer: loop,
		Document: func() kisspad.Document { return kisspad.Document{Text: "A 1", Filename: "x.kiss"} },
		Surface:  recordingSurface(&out),
		Context:  ctx,
	})
	require.NoError(t, err)

	s.Changed()
	assert.Equal(t, 1, loop.Drain(10))
	parent.End()

	require.Len(t, out, 1)
	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "highlight.pass", ended[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), ended[0].Parent().SpanID())
}
