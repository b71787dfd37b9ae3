// Package mapofmu provides locking per-key: acquiring the lock for one
// key serializes all work under that key while work under other keys
// proceeds concurrently. The review registry uses it to serialize the
// interaction handlers of a single ban review session.
//
// https://stackoverflow.com/questions/40931373/how-to-gc-a-map-of-mutexes-in-go
package mapofmu

import (
	"fmt"
	"sync"
)

// M wraps a map of mutexes. Each key locks separately. Entries are
// created on first Lock and removed once the last holder unlocks, so
// the map never grows beyond the set of currently contended keys.
type M[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry[K]
}

type entry[K comparable] struct {
	owner *M[K]
	lock  sync.Mutex
	refs  int
	key   K
}

// Unlocker releases a lock acquired with Lock.
type Unlocker interface {
	Unlock()
}

func New[K comparable]() *M[K] {
	return &M[K]{entries: make(map[K]*entry[K])}
}

// Lock acquires the lock for key, blocking while another holder has it.
// The returned Unlocker must be called exactly once.
func (m *M[K]) Lock(key K) Unlocker {
	m.mu.Lock()

	e, ok := m.entries[key]

	if !ok {
		e = &entry[K]{owner: m, key: key}
		m.entries[key] = e
	}

	e.refs++
	m.mu.Unlock()

	e.lock.Lock()

	return e
}

func (e *entry[K]) Unlock() {
	m := e.owner

	m.mu.Lock()

	cur, ok := m.entries[e.key]

	if !ok {
		m.mu.Unlock()
		panic(fmt.Errorf("unlock requested for key=%v but no entry found", e.key))
	}

	cur.refs--

	if cur.refs < 1 {
		delete(m.entries, e.key)
	}

	m.mu.Unlock()

	e.lock.Unlock()
}
