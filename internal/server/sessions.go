package server

import (
	"errors"
	"sync"

	"github.com/francescabuggio/ecocart/internal/session"
)

var errSessionNotFound = errors.New("session not found")

// registry owns the in-progress session states. Each state has exactly
// one logical writer (its participant), so a plain mutex around the map
// is enough; transitions themselves are pure.
type registry struct {
	mu       sync.Mutex
	machine  session.Machine
	sessions map[string]*entry
}

type entry struct {
	state session.State
	saved bool
}

func newRegistry(m session.Machine) *registry {
	return &registry{
		machine:  m,
		sessions: make(map[string]*entry),
	}
}

func (r *registry) start() session.State {
	st := r.machine.Start()
	r.mu.Lock()
	r.sessions[st.Record.SessionID] = &entry{state: st}
	r.mu.Unlock()
	return st
}

func (r *registry) get(id string) (session.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return session.State{}, false, errSessionNotFound
	}
	return e.state, e.saved, nil
}

func (r *registry) advance(id string, in session.Input) (session.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return session.State{}, errSessionNotFound
	}
	next, err := r.machine.Advance(e.state, in)
	if err != nil {
		return e.state, err
	}
	e.state = next
	return next, nil
}

func (r *registry) click(id string, productID int) (session.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return session.State{}, errSessionNotFound
	}
	e.state = r.machine.RecordClick(e.state, productID)
	return e.state, nil
}

// markSaved flips the one-shot persistence guard. It reports false when
// the session was already marked, so a re-rendered completion screen
// never saves twice.
func (r *registry) markSaved(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok || e.saved {
		return false
	}
	e.saved = true
	return true
}
