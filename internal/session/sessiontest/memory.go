// Package sessiontest provides an in-memory refresh record store for tests.
package sessiontest

import (
	"context"
	"sync"
	"time"
)

type record struct {
	token     string
	expiresAt time.Time
}

// MemoryStore mimics the Redis store: one record per principal, last write
// wins, records vanish after their TTL. Err, when set, is returned by every call.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]record
	calls   int

	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]record{}}
}

func (s *MemoryStore) Save(_ context.Context, principalID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return s.Err
	}
	s.records[principalID] = record{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, principalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return "", s.Err
	}
	rec, ok := s.records[principalID]
	if !ok || time.Now().After(rec.expiresAt) {
		return "", nil
	}
	return rec.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return s.Err
	}
	delete(s.records, principalID)
	return nil
}

// Token returns the stored token for principalID without counting as a call.
func (s *MemoryStore) Token(principalID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[principalID]
	if !ok || time.Now().After(rec.expiresAt) {
		return "", false
	}
	return rec.token, true
}

func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
