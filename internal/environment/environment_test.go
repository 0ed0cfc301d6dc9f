package environment

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/model"
	"apiexplorer/internal/storage"
)

const origin = "https://api.campaignmanagement.example.com"

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name         string
		useRealAPI   bool
		proxyEnabled bool
		want         string
	}{
		{"mock ignores proxy off", false, false, "/api/v1"},
		{"mock ignores proxy on", false, true, "/api/v1"},
		{"real via proxy", true, true, "/api/proxy"},
		{"real direct", true, false, origin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(origin, tt.useRealAPI, tt.proxyEnabled)
			assert.Equal(t, tt.want, got.BaseAPIURL)
			assert.Equal(t, tt.useRealAPI, got.UseRealAPI)
			assert.Equal(t, tt.proxyEnabled, got.ProxyEnabled)
		})
	}
}

func TestResolverTogglesPersist(t *testing.T) {
	store := storage.NewMemoryStore()
	r := NewResolver(store, origin, nil)

	settings, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(origin), settings)

	_, err = r.SetUseRealAPI(true)
	require.NoError(t, err)
	assert.Equal(t, "/api/proxy", r.Current().BaseAPIURL)

	_, err = r.SetProxyEnabled(false)
	require.NoError(t, err)
	assert.Equal(t, origin, r.Current().BaseAPIURL)

	raw, ok, err := store.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	var saved model.EnvironmentSettings
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Equal(t, r.Current(), saved)
}

func TestLoadRederivesBaseURL(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(StorageKey, `{"useRealApi":true,"baseApiUrl":"http://tampered","proxyEnabled":true}`))

	got, err := NewResolver(store, origin, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "/api/proxy", got.BaseAPIURL)
}

func TestLoadCorruptFallsBackToDefault(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(StorageKey, "{oops"))

	got, err := NewResolver(store, origin, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(origin), got)
}

func TestEnvironmentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("derivation ignores prior state", prop.ForAll(
		func(priorReal, priorProxy, useReal, proxy bool) bool {
			r := NewResolver(storage.NewMemoryStore(), origin, nil)
			if _, err := r.Apply(priorReal, priorProxy); err != nil {
				return false
			}
			got, err := r.Apply(useReal, proxy)
			if err != nil {
				return false
			}
			return got == Resolve(origin, useReal, proxy)
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("persist then reload is identical", prop.ForAll(
		func(useReal, proxy bool) bool {
			store := storage.NewMemoryStore()
			saved, err := NewResolver(store, origin, nil).Apply(useReal, proxy)
			if err != nil {
				return false
			}
			loaded, err := NewResolver(store, origin, nil).Load()
			return err == nil && loaded == saved
		},
		gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
