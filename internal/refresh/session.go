package refresh

import (
	"sync"
	"time"
)

// State is where the refresh mechanism currently is.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateWaiting
	StateListening
	StateClosed // push channel ended; the last view stays on screen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateWaiting:
		return "waiting"
	case StateListening:
		return "listening"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the process-wide refresh state. It is created once when the
// mechanism starts and lives until the process exits.
type Session struct {
	mu          sync.Mutex
	active      bool
	state       State
	attempts    int
	successes   int
	failures    int
	lastSuccess time.Time
	nextAttempt time.Time
}

// Stats is a point-in-time copy of a Session.
type Stats struct {
	Active      bool
	State       State
	Attempts    int
	Successes   int
	Failures    int
	LastSuccess time.Time
	// NextAttempt is when the pull loop leaves Waiting. Zero otherwise.
	NextAttempt time.Time
}

// Stats returns a snapshot of the session.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Active:      s.active,
		State:       s.state,
		Attempts:    s.attempts,
		Successes:   s.successes,
		Failures:    s.failures,
		LastSuccess: s.lastSuccess,
		NextAttempt: s.nextAttempt,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) begin(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.state = state
}

func (s *Session) end(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.state = state
	s.nextAttempt = time.Time{}
}

func (s *Session) fetching() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFetching
	s.nextAttempt = time.Time{}
	s.attempts++
	return s.attempts
}

func (s *Session) waiting(until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateWaiting
	s.nextAttempt = until
}

func (s *Session) delivered(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successes++
	s.lastSuccess = at
}

func (s *Session) failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	return s.failures
}

// received counts a push frame as an attempt.
func (s *Session) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return s.attempts
}
