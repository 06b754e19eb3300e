// Package cache keeps successful GET bodies for a fixed time so repeated
// lookups of the same resource skip the network.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// TTL is how long an entry stays fresh. Entries are never revalidated.
const TTL = 5 * time.Minute

type Store interface {
	// Get returns the stored body and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Key builds the lookup key for a request: the URL, an underscore and the
// JSON encoding of the request options.
func Key(url string, options any) string {
	if options == nil {
		return url + "_{}"
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return url + "_{}"
	}
	return url + "_" + string(raw)
}

type entry struct {
	body     []byte
	storedAt time.Time
}

// MemoryStore is a process-local Store. Expired entries are dropped when
// they are next read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   Clock
	ttl     time.Duration
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(realClock{})
}

func NewMemoryStoreWithClock(clock Clock) *MemoryStore {
	return &MemoryStore{entries: map[string]entry{}, clock: clock, ttl: TTL}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.clock.Now().Sub(e.storedAt) >= s.ttl {
		delete(s.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.body...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{body: append([]byte(nil), body...), storedAt: s.clock.Now()}
	return nil
}

// Len reports how many entries are held, fresh or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
