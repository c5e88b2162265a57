// Package localstore provides a synchronous key-value byte store mirroring the
// browser local-storage surface the session layer expects.
package localstore

import "sync"

type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, val []byte) error
	Delete(key string) error
}

type memoryStore struct {
	mutex   sync.RWMutex
	entries map[string][]byte
}

var _ Store = (*memoryStore)(nil)

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string][]byte)}
}

func (st *memoryStore) Get(key string) ([]byte, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	val, ok := st.entries[key]
	return val, ok
}

func (st *memoryStore) Set(key string, val []byte) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	cp := make([]byte, len(val))
	copy(cp, val)
	st.entries[key] = cp
	return nil
}

func (st *memoryStore) Delete(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.entries, key)
	return nil
}
