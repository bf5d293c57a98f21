package controller

import (
	"Storefront/view"
	"context"
	"sync"
	"time"
)

// Session is one browser's controller and document. Handlers hold the
// session lock for the duration of an action.
type Session struct {
	sync.Mutex
	ID         string
	Controller *Controller
	View       *view.View

	lastSeen time.Time
}

type Factory func(sessionID string) *Session

// Registry maps session ids to their sessions, creating them on first use.
// Sessions idle for longer than ttl are evicted; a zero ttl keeps them forever.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id and bootstraps it unless a previous load
// succeeded. The session is returned even when loading fails so that the
// failure alert can be shown.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	now := r.now()
	s, ok := r.sessions[id]
	if ok && r.evict(s, now) {
		ok = false
	}
	if !ok {
		s = r.factory(id)
		r.sessions[id] = s
	}
	s.lastSeen = now
	r.mu.Unlock()

	s.Lock()
	defer s.Unlock()
	if s.Controller.Loaded() {
		return s, nil
	}
	return s, s.Controller.Bootstrap(ctx)
}

// Lookup returns an existing session without loading it.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// evict closes s if it has been idle past the ttl. A session whose lock is
// held is in use and stays.
func (r *Registry) evict(s *Session, now time.Time) bool {
	if r.ttl <= 0 || now.Sub(s.lastSeen) <= r.ttl {
		return false
	}
	if !s.TryLock() {
		return false
	}
	defer s.Unlock()
	s.Controller.Close()
	return true
}

// Sweep evicts idle sessions and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if r.evict(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
