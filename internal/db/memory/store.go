// Package memory implements db.Store in process memory. It backs the
// "memory" alias driver and tests that need a real store.
package memory

import (
	"context"
	"path"
	"slices"
	"sync"
	"time"

	"github.com/kailas-cloud/tierank/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store is a concurrency-safe map of strings and sets.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	sets   map[string]map[string]struct{}
	closed bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		values: make(map[string][]byte),
		sets:   make(map[string]map[string]struct{}),
	}
}

// Ping reports db.ErrUnavailable after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrUnavailable}
	}
	return nil
}

// Close marks the store closed. Data is kept.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// WaitForReady returns immediately: memory is always ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, key)
	s.values[key] = slices.Clone(value)
	return nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.sets, key)
	return nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, isValue := s.values[key]
	_, isSet := s.sets[key]
	return isValue || isSet, nil
}

// Scan matches keys with glob semantics close to Redis MATCH. Output is sorted.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	collect := func(k string) error {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return &db.Error{Op: db.OpScan, Err: err}
		}
		if ok {
			keys = append(keys, k)
		}
		return nil
	}
	for k := range s.values {
		if err := collect(k); err != nil {
			return nil, err
		}
	}
	for k := range s.sets {
		if err := collect(k); err != nil {
			return nil, err
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// SMembers returns members in sorted order.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.sets[key]
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}

func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		delete(s.values, key)
		set = make(map[string]struct{}, len(members))
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

func (s *Store) SRem(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(set, m)
	}
	if len(set) == 0 {
		delete(s.sets, key)
	}
	return nil
}
