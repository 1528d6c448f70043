package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. It satisfies the durability contract
// for a single-process deployment and backs tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() (store *MemoryStore) {
	store = &MemoryStore{
		sessions: make(map[string]Session),
	}
	return store
}

// Get retrieves a session snapshot by id.
func (m *MemoryStore) Get(_ context.Context, id string) (sess Session, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.sessions[id]
	if !ok {
		err = ErrNotFound
		return sess, err
	}

	sess = stored.Clone()
	return sess, err
}

// Put stores a session snapshot, overwriting any previous one.
func (m *MemoryStore) Put(_ context.Context, sess Session) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sess.ID] = sess.Clone()
	return err
}

// Exists reports whether a session with the given id is stored.
func (m *MemoryStore) Exists(_ context.Context, id string) (found bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, found = m.sessions[id]
	return found, err
}

// Close releases nothing; present to satisfy Store.
func (m *MemoryStore) Close() (err error) {
	return err
}
