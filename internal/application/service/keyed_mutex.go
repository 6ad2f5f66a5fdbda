package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes work per id. Entries are dropped when no holder or waiter is left.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*keyedEntry)}
}

// Lock blocks until id is free and returns the matching unlock func
func (k *keyedMutex) Lock(id uuid.UUID) func() {
	k.mu.Lock()
	e, ok := k.locks[id]
	if !ok {
		e = &keyedEntry{}
		k.locks[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
