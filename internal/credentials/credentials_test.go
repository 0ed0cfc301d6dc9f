package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/storage"
)

func TestActiveRequiresKeyAndFlag(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := New(backend)

	_, ok := s.Active()
	assert.False(t, ok, "nothing stored")

	require.NoError(t, s.SetKey("  sk_live_123  "))
	_, ok = s.Active()
	assert.False(t, ok, "key without flag")

	require.NoError(t, s.SetEnabled(true))
	key, ok := s.Active()
	assert.True(t, ok)
	assert.Equal(t, "sk_live_123", key)

	raw, _, err := backend.Get(EnabledStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
}

func TestClearKeepsFlag(t *testing.T) {
	s := New(storage.NewMemoryStore())
	require.NoError(t, s.SetKey("k"))
	require.NoError(t, s.SetEnabled(true))
	require.NoError(t, s.Clear())

	key, err := s.Key()
	require.NoError(t, err)
	assert.Empty(t, key)

	on, err := s.Enabled()
	require.NoError(t, err)
	assert.True(t, on)

	_, ok := s.Active()
	assert.False(t, ok)
}

func TestBlankKeyClears(t *testing.T) {
	s := New(storage.NewMemoryStore())
	require.NoError(t, s.SetKey("k"))
	require.NoError(t, s.SetKey("   "))
	key, err := s.Key()
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestDisable(t *testing.T) {
	s := New(storage.NewMemoryStore())
	require.NoError(t, s.SetKey("k"))
	require.NoError(t, s.SetEnabled(true))
	require.NoError(t, s.SetEnabled(false))

	on, err := s.Enabled()
	require.NoError(t, err)
	assert.False(t, on)
}
