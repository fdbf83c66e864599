package store

import (
	"context"
	"sync"

	"github.com/studymate-ai/studymate/history"
)

// InMemoryStore keeps transcripts in process memory. Suited to tests and
// single-run CLI sessions.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]*history.Entry
}

// NewInMemoryStore creates an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]*history.Entry),
	}
}

// Append adds a turn to its session's transcript.
func (s *InMemoryStore) Append(ctx context.Context, entry *history.Entry) error {
	if err := history.Prepare(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[entry.SessionID] = append(s.sessions[entry.SessionID], entry)
	return nil
}

// List returns the session's turns in append order.
func (s *InMemoryStore) List(ctx context.Context, sessionID string) ([]*history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.sessions[sessionID]
	out := make([]*history.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Clear drops the session's transcript.
func (s *InMemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of turns recorded for the session.
func (s *InMemoryStore) Count(ctx context.Context, sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID]), nil
}
