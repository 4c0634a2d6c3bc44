package highlight

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/log"
)

// Session ties an Engine to one live document. Change notifications schedule
// a deferred pass; the pass reads the latest text, file name and error lines
// when it runs and applies the result to the surface.
type Session struct {
	engine   *Engine
	sched    Scheduler
	deferrer Deferrer
	document func() kisspad.Document
	errors   func() kisspad.ErrorLineSet
	surface  kisspad.Surface
	ctx      context.Context

	applying bool
	last     Result
	passes   int
}

// SessionConfig holds the collaborators of a Session.
type SessionConfig struct {
	Engine     *Engine
	Deferrer   Deferrer
	Document   func() kisspad.Document     // Latest document snapshot
	ErrorLines func() kisspad.ErrorLineSet // Latest error lines, may be nil
	Surface    kisspad.Surface

	// Context is passed to deferred passes. Defaults to context.Background.
	Context context.Context
}

// NewSession creates a Session.
func NewSession(cfg SessionConfig) (*Session, error) {
	switch {
	case cfg.Engine == nil:
		return nil, errors.New("highlight: engine cannot be nil")
	case cfg.Deferrer == nil:
		return nil, errors.New("highlight: deferrer cannot be nil")
	case cfg.Document == nil:
		return nil, errors.New("highlight: document source cannot be nil")
	case cfg.Surface == nil:
		return nil, errors.New("highlight: surface cannot be nil")
	}
	errs := cfg.ErrorLines
	if errs == nil {
		errs = func() kisspad.ErrorLineSet { return nil }
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{
		ctx:      ctx,
		engine:   cfg.Engine,
		deferrer: cfg.Deferrer,
		document: cfg.Document,
		errors:   errs,
		surface:  cfg.Surface,
	}, nil
}

// Changed is the document-changed notification. It never runs a pass itself.
// Notifications raised by the surface while a pass applies its own styles
// are dropped.
func (s *Session) Changed() {
	if s.applying {
		log.Debug(log.CatSched, "ignoring change raised by style application")
		return
	}
	if s.sched.Request() {
		log.Debug(log.CatSched, "pass scheduled")
		s.deferrer.Defer(func() {
			// RunPass logs its own failures.
			_ = s.RunPass(s.ctx)
		})
	}
}

// State returns the scheduler state.
func (s *Session) State() State {
	return s.sched.State()
}

// RunPass executes the scheduled pass, if any. A failure while applying styles
// is logged and returned, and the surface keeps its previous styling.
func (s *Session) RunPass(ctx context.Context) error {
	mutations, ok := s.sched.Begin()
	if !ok {
		return nil
	}

	doc := s.document()
	res := s.engine.Pass(ctx, doc, s.errors())

	if err := s.apply(doc.Text, res.Spans); err != nil {
		log.ErrorErr(log.CatPass, "pass aborted", err, "language", res.Language, "length", len(doc.Text))
		return err
	}

	s.last = res
	s.passes++
	log.Debug(log.CatPass, "pass applied",
		"language", res.Language,
		"length", len(doc.Text),
		"spans", len(res.Spans),
		"mutations", mutations,
	)
	return nil
}

func (s *Session) apply(text string, spans []kisspad.StyleSpan) (err error) {
	if err := kisspad.ValidateSpans(spans, len(text)); err != nil {
		return err
	}

	s.applying = true
	defer func() {
		s.applying = false
		if r := recover(); r != nil {
			err = fmt.Errorf("highlight: surface panicked: %v", r)
		}
	}()
	return s.surface.Apply(text, spans)
}

// Last returns the result of the last successfully applied pass.
func (s *Session) Last() Result {
	return s.last
}

// Passes returns the number of successfully applied passes.
func (s *Session) Passes() int {
	return s.passes
}

// Background returns the error line background used by the overlay.
func (s *Session) Background() kisspad.ColorID {
	return s.engine.Background()
}
