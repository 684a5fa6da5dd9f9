// Package lockmanager serializes read-modify-write sequences per collection
// name, so "load, compute, save" behaves as one logical operation against a
// collection. Multi-collection acquisitions always lock in one global order
// (sorted name order), which rules out deadlock between workflows that touch
// the same pair of collections.
package lockmanager

import (
	"sort"
	"sync"
)

// Manager hands out one mutex per collection name.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Manager {
	return &Manager{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the locks for the given collection names and returns the
// release func. Names are deduplicated and locked in sorted order regardless
// of how the caller listed them; release runs in reverse order. Callers defer
// the returned func so every exit path releases.
func (m *Manager) Lock(names ...string) (unlock func()) {
	ordered := dedupeSorted(names)

	acquired := make([]*sync.Mutex, 0, len(ordered))
	for _, name := range ordered {
		mu := m.mutexFor(name)
		mu.Lock()
		acquired = append(acquired, mu)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

func (m *Manager) mutexFor(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	mu, ok := m.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[name] = mu
	}
	return mu
}

func dedupeSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	ordered := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	return ordered
}
