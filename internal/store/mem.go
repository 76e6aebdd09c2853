package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and throwaway sessions.
type MemStore struct {
	mu    sync.Mutex
	value []byte
	// FailSet, when non-nil, is returned by every Set call.
	FailSet error
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Get(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(s.value))
	copy(out, s.value)
	return out, nil
}

func (s *MemStore) Set(ctx context.Context, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.value = make([]byte, len(value))
	copy(s.value, value)
	return nil
}

func (s *MemStore) Close() error { return nil }
