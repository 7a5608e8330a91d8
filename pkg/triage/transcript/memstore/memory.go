package memstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cognicore/triage/pkg/triage/transcript"
)

// Store is an in-memory implementation of transcript.Store for tests.
type Store struct {
	mu    sync.RWMutex
	order []string // insertion order, oldest first
	items map[string]transcript.Transcript
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{items: make(map[string]transcript.Transcript)}
}

// Close implements transcript.Store.
func (s *Store) Close() error { return nil }

// Ping implements transcript.Store.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Save stores a summary under a fresh ULID.
func (s *Store) Save(ctx context.Context, summary json.RawMessage) (transcript.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := transcript.Transcript{
		ID:        transcript.NewID(),
		CreatedAt: time.Now().UTC(),
		Summary:   append(json.RawMessage(nil), summary...),
	}
	s.items[t.ID] = t
	s.order = append(s.order, t.ID)
	return t, nil
}

// Get returns a transcript by id.
func (s *Store) Get(ctx context.Context, id string) (transcript.Transcript, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[id]
	return t, ok, nil
}

// Recent returns the newest transcripts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]transcript.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var out []transcript.Transcript
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.items[s.order[i]])
	}
	return out, nil
}
