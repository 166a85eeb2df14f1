// Package quota enforces the free-tier analysis allowance.
//
// The counter is session-scoped and deliberately not persisted: the free
// tier has no login, so quota follows an opaque session id and resets when
// a client starts a new session. Pro callers bypass this store entirely.
package quota

import (
	"errors"
	"sync"
	"time"
)

// Operation costs in credits charged against the free allowance.
const (
	CostSingle = 1
	CostBatch  = 2
)

// DefaultMaxFreeAnalyses is the free allowance per session.
const DefaultMaxFreeAnalyses = 3

// ErrQuotaExceeded means the session does not have enough remaining credits
// for the requested operation.
var ErrQuotaExceeded = errors.New("free analysis quota exceeded")

type entry struct {
	consumed int
	lastSeen time.Time
}

// SessionStore tracks per-session consumed credits. Reserve is a single
// guarded compare-and-add, so concurrent requests from the same session
// cannot race past the limit.
type SessionStore struct {
	mu       sync.Mutex
	limit    int
	ttl      time.Duration
	sessions map[string]*entry
	lastScan time.Time
}

// NewSessionStore returns a store with the given allowance and session TTL.
// Non-positive values fall back to the defaults.
func NewSessionStore(limit int, ttl time.Duration) *SessionStore {
	if limit <= 0 {
		limit = DefaultMaxFreeAnalyses
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{
		limit:    limit,
		ttl:      ttl,
		sessions: make(map[string]*entry),
		lastScan: time.Now(),
	}
}

// Limit returns the per-session allowance.
func (s *SessionStore) Limit() int { return s.limit }

// Reserve atomically charges cost credits to the session. It fails with
// ErrQuotaExceeded without consuming anything when remaining < cost, and
// returns the credits remaining after the reservation otherwise.
func (s *SessionStore) Reserve(sessionID string, cost int) (int, error) {
	if cost < 0 {
		cost = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{}
		s.sessions[sessionID] = e
	}
	e.lastSeen = time.Now()

	if e.consumed+cost > s.limit {
		return s.limit - e.consumed, ErrQuotaExceeded
	}
	e.consumed += cost
	return s.limit - e.consumed, nil
}

// Refund returns cost credits to the session, e.g. when the dispatch failed
// after a successful reservation. Consumed never goes negative.
func (s *SessionStore) Refund(sessionID string, cost int) {
	if cost <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		e.consumed -= cost
		if e.consumed < 0 {
			e.consumed = 0
		}
		e.lastSeen = time.Now()
	}
}

// Remaining reports the credits left for the session without charging it.
func (s *SessionStore) Remaining(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		return s.limit - e.consumed
	}
	return s.limit
}

// sweepLocked drops sessions idle past the TTL. Runs at most once per TTL
// interval; callers hold s.mu.
func (s *SessionStore) sweepLocked() {
	now := time.Now()
	if now.Sub(s.lastScan) < s.ttl {
		return
	}
	s.lastScan = now
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
