// Package credentials persists the API key and the "include key" toggle.
package credentials

import (
	"fmt"
	"strings"
	"sync"

	"apiexplorer/internal/storage"
)

const (
	KeyStorageKey     = "api_explorer_api_key"
	EnabledStorageKey = "api_explorer_use_api_key"
)

// Store reads through to the backing storage on every call so two processes
// sharing a storage directory see each other's changes.
type Store struct {
	mu      sync.Mutex
	backend storage.Store
}

func New(backend storage.Store) *Store {
	return &Store{backend: backend}
}

// Key returns the stored key, or "" when none is held.
func (s *Store) Key() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.backend.Get(KeyStorageKey)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	return v, nil
}

func (s *Store) SetKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Set(KeyStorageKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

// Clear removes the key. The enabled flag is kept as is.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(KeyStorageKey); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}

func (s *Store) Enabled() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.backend.Get(EnabledStorageKey)
	if err != nil {
		return false, fmt.Errorf("read api key flag: %w", err)
	}
	return v == "true", nil
}

func (s *Store) SetEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := "false"
	if enabled {
		v = "true"
	}
	if err := s.backend.Set(EnabledStorageKey, v); err != nil {
		return fmt.Errorf("save api key flag: %w", err)
	}
	return nil
}

// Active returns the key when one is held and enabled.
func (s *Store) Active() (string, bool) {
	on, err := s.Enabled()
	if err != nil || !on {
		return "", false
	}
	key, err := s.Key()
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
