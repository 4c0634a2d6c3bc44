package highlight

import (
	"sync"
)

// State is the scheduler state.
type State int

const (
	// Idle means no pass is pending.
	Idle State = iota
	// PassScheduled means a deferred pass is queued and has not started.
	PassScheduled
)

func (s State) String() string {
	if s == PassScheduled {
		return "pass-scheduled"
	}
	return "idle"
}

// Scheduler tracks whether a deferred pass is pending. Mutations that arrive
// while a pass is scheduled are coalesced into it.
type Scheduler struct {
	mu        sync.Mutex
	state     State
	coalesced int
}

// Request records a mutation. It reports true when the caller must enqueue a
// pass (Idle to PassScheduled); false means a queued pass will cover it.
func (s *Scheduler) Request() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coalesced++
	if s.state == PassScheduled {
		return false
	}
	s.state = PassScheduled
	return true
}

// Begin moves a scheduled pass to Idle as it starts executing and returns the
// number of mutations it covers. ok is false when nothing was scheduled.
func (s *Scheduler) Begin() (mutations int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != PassScheduled {
		return 0, false
	}
	mutations = s.coalesced
	s.state, s.coalesced = Idle, 0
	return mutations, true
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
