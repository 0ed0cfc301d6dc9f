// Package storage is the durable key/value store behind the explorer's
// settings and credentials.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// Secure file permissions - owner read/write only
	secureFileMode = 0600
	secureDirMode  = 0700
)

// Store holds opaque string values under fixed keys. A missing key is not an
// error: Get reports ok=false.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns the store selected by driver ("json", "sqlite" or "memory")
// rooted at dir. An empty dir means ~/.apiexplorer.
func Open(driver, dir string) (Store, error) {
	if driver == "memory" {
		return NewMemoryStore(), nil
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".apiexplorer")
	}
	if err := os.MkdirAll(dir, secureDirMode); err != nil {
		return nil, err
	}
	switch driver {
	case "", "json":
		return NewJSONStore(filepath.Join(dir, "storage.json"))
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, "apiexplorer.db"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
