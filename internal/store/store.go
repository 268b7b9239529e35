// Package store provides the in-memory persistence layer for the engine.
// Every store guards its map with a RWMutex so read-modify-write operations
// are atomic per key and list operations see a consistent snapshot. A real
// deployment can swap these for a transactional backend without changing the
// call signatures.
package store

import "sync"

// memoryStore is a mutex-guarded map shared by the concrete stores. Values
// are stored and returned by copy; callers never hold a reference into the
// store.
type memoryStore[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

func newMemoryStore[V any]() *memoryStore[V] {
	return &memoryStore[V]{items: make(map[string]V)}
}

func (s *memoryStore[V]) get(id string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

func (s *memoryStore[V]) put(id string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = v
}

func (s *memoryStore[V]) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *memoryStore[V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// snapshot returns the current values in unspecified order
func (s *memoryStore[V]) snapshot() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}
