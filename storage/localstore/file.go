package localstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// fileStore keeps the whole key-value map in one JSON file, rewritten on every
// write. Fine for a handful of session keys; not a database.
type fileStore struct {
	mutex   sync.RWMutex
	path    string
	entries map[string][]byte
}

var _ Store = (*fileStore)(nil)

func NewFileStore(path string) (Store, error) {
	st := &fileStore{
		path:    path,
		entries: make(map[string][]byte),
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, errors.Wrap(err, "reading local store")
	}
	if len(data) > 0 {
		if err = json.Unmarshal(data, &st.entries); err != nil {
			return nil, errors.Wrap(err, "decoding local store")
		}
	}
	return st, nil
}

func (st *fileStore) Get(key string) ([]byte, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	val, ok := st.entries[key]
	return val, ok
}

func (st *fileStore) Set(key string, val []byte) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	cp := make([]byte, len(val))
	copy(cp, val)
	st.entries[key] = cp
	return st.flush()
}

func (st *fileStore) Delete(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.entries, key)
	return st.flush()
}

func (st *fileStore) flush() error {
	data, err := json.Marshal(st.entries)
	if err != nil {
		return errors.Wrap(err, "encoding local store")
	}
	if err = os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return errors.Wrap(err, "creating local store dir")
	}
	return errors.Wrap(ioutil.WriteFile(st.path, data, 0o600), "writing local store")
}
