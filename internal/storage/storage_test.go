package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	for _, driver := range []string{"json", "sqlite", "memory"} {
		t.Run(driver, func(t *testing.T) {
			s, err := Open(driver, t.TempDir())
			require.NoError(t, err)
			defer s.Close()

			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", "v1"))
			require.NoError(t, s.Set("k", "v2"))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, s.Delete("k"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Delete("never-set"))
		})
	}
}

func TestJSONStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	s1, err := NewJSONStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set("api_explorer_api_key", "secret"))

	s2, err := NewJSONStore(path)
	require.NoError(t, err)
	v, ok, err := s2.Get("api_explorer_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secureFileMode), info.Mode().Perm())
}

func TestSQLiteStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiexplorer.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set("api_explorer_use_api_key", "true"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get("api_explorer_use_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewJSONStore(path)
	assert.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}
