package engine

import (
	"sync"
)

// keyedLocks serializes turn processing per session id. Two concurrent
// submissions for one session must not interleave their get-then-put
// cycles; distinct sessions proceed fully in parallel.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

// lockEntry refcounts holders and waiters so the table entry can be
// removed once nobody references it. Without the count the table would
// grow by one mutex per session id for the life of the process.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() (k *keyedLocks) {
	k = &keyedLocks{
		entries: make(map[string]*lockEntry),
	}
	return k
}

// lock acquires the mutex for the given key and returns its unlock func.
func (k *keyedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	unlock = func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
	return unlock
}
