package controllers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"roomreserve/internal/domain"
)

// WorkflowFactory creates a fresh reservation workflow over the shared
// stores. Injected so tests can substitute fakes.
type WorkflowFactory func() domain.ReservationWorkflow

// sessionIdleTTL is how long an untouched session survives. Anyone can
// mint a session with a single POST, so abandoned wizards must not grow
// the registry forever.
const sessionIdleTTL = 2 * time.Hour

type sessionEntry struct {
	wf       domain.ReservationWorkflow
	lastSeen time.Time
}

// sessionRegistry maps opaque session IDs to their workflow instance.
// Expired entries are swept on create; a browser that loses its ID or
// outlives the TTL simply starts a new session.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	factory  WorkflowFactory
	now      func() time.Time
}

func newSessionRegistry(factory WorkflowFactory) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*sessionEntry),
		factory:  factory,
		now:      time.Now,
	}
}

func (r *sessionRegistry) create() (string, domain.ReservationWorkflow) {
	id := uuid.NewString()
	wf := r.factory()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictIdle()
	r.sessions[id] = &sessionEntry{wf: wf, lastSeen: r.now()}
	return id, wf
}

func (r *sessionRegistry) get(id string) (domain.ReservationWorkflow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = r.now()
	return entry.wf, true
}

// evictIdle drops sessions idle beyond the TTL. Caller holds the lock.
func (r *sessionRegistry) evictIdle() {
	cutoff := r.now().Add(-sessionIdleTTL)
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
