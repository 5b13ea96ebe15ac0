package resetcode

import (
	"context"
	"sync"
	"time"
)

// Entry is a live reset code for one email.
type Entry struct {
	Code      string
	ExpiresAt time.Time
}

// Store is the key-value capability the manager needs. Set replaces any
// existing value and the store may drop the key once ttl elapses.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memoryItem struct {
	entry    Entry
	deadline time.Time
}

// MemoryStore keeps entries in process memory. Suitable for tests and a
// single development instance; codes do not survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !it.deadline.IsZero() && !s.now().Before(it.deadline) {
		delete(s.items, key)
		return Entry{}, false, nil
	}
	return it.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deadline time.Time
	if ttl > 0 {
		deadline = s.now().Add(ttl)
	}
	s.items[key] = memoryItem{entry: e, deadline: deadline}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Len reports the number of stored keys, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
