// Package session provides the in-memory conversation memory for active
// interview sessions.
//
// A [Store] maps a session ID to an ordered, append-only transcript of
// [Turn] values. Transcripts for different sessions are fully independent:
// concurrent appends to distinct sessions never contend, while appends to the
// same session are serialised so arrival order is preserved.
//
// There is no TTL or eviction — sessions accumulate until explicitly deleted.
// This mirrors the intended single-process training deployment; long-lived
// installations must call [Store.Delete] when a session ends.
package session

import "sync"

// Store is a thread-safe, in-memory session transcript store.
// The zero value is not ready to use; construct with [NewStore].
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*transcript
}

// transcript holds one session's turns behind its own lock so sessions
// never block each other.
type transcript struct {
	mu    sync.Mutex
	turns []Turn
}

// NewStore returns an initialised [Store].
func NewStore() *Store {
	return &Store{sessions: make(map[string]*transcript)}
}

// GetOrCreate ensures a transcript exists for the session. It is idempotent
// and returns true when the session already existed.
func (s *Store) GetOrCreate(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; ok {
		return true
	}
	s.sessions[sessionID] = &transcript{}
	return false
}

// Append appends the given turns to the session's transcript in order,
// creating the session on first use. All turns of one call are appended as an
// atomic unit — concurrent Append calls for the same session cannot
// interleave their turns.
func (s *Store) Append(sessionID string, turns ...Turn) {
	t := s.getOrCreate(sessionID)
	t.mu.Lock()
	t.turns = append(t.turns, turns...)
	t.mu.Unlock()
}

// Read returns a copy of the session's transcript in arrival order.
// A missing session yields an empty slice, not an error.
func (s *Store) Read(sessionID string) []Turn {
	s.mu.RLock()
	t, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []Turn{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Clear empties the session's transcript but keeps the session entry.
// Clearing an unknown session is a no-op.
func (s *Store) Clear(sessionID string) {
	s.mu.RLock()
	t, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	t.mu.Lock()
	t.turns = nil
	t.mu.Unlock()
}

// Delete removes the session entirely. A later Append or GetOrCreate for the
// same ID starts a fresh transcript.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len reports the number of turns currently recorded for the session.
func (s *Store) Len(sessionID string) int {
	s.mu.RLock()
	t, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}

// getOrCreate returns the session's transcript, creating it if absent.
func (s *Store) getOrCreate(sessionID string) *transcript {
	s.mu.RLock()
	t, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.sessions[sessionID]; ok {
		return t
	}
	t = &transcript{}
	s.sessions[sessionID] = t
	return t
}
