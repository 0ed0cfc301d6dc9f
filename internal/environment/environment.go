// Package environment derives the explorer's base API URL from the
// use-real-API and proxy toggles and persists the result.
package environment

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"apiexplorer/internal/model"
	"apiexplorer/internal/storage"
)

const (
	StorageKey = "api_explorer_environment_settings"

	MockBaseURL         = "/api/v1"
	ProxyBaseURL        = "/api/proxy"
	DefaultRemoteOrigin = "https://api.campaignmanagement.example.com"
)

// Resolve is the derivation table. It depends on nothing but its arguments.
func Resolve(origin string, useRealAPI, proxyEnabled bool) model.EnvironmentSettings {
	base := MockBaseURL
	if useRealAPI {
		if proxyEnabled {
			base = ProxyBaseURL
		} else {
			base = origin
		}
	}
	return model.EnvironmentSettings{UseRealAPI: useRealAPI, BaseAPIURL: base, ProxyEnabled: proxyEnabled}
}

// Default is mock mode with the proxy preselected for when the real API is
// switched on.
func Default(origin string) model.EnvironmentSettings {
	return Resolve(origin, false, true)
}

// Resolver owns the current settings and writes them through to the store on
// every change.
type Resolver struct {
	mu      sync.Mutex
	store   storage.Store
	origin  string
	log     *zap.Logger
	current model.EnvironmentSettings
}

func NewResolver(store storage.Store, origin string, log *zap.Logger) *Resolver {
	if origin == "" {
		origin = DefaultRemoteOrigin
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{store: store, origin: origin, log: log, current: Default(origin)}
}

// Load reads the persisted settings. The stored base URL is ignored and
// re-derived from the toggles; unreadable records fall back to the defaults.
func (r *Resolver) Load() (model.EnvironmentSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok, err := r.store.Get(StorageKey)
	if err != nil {
		return r.current, fmt.Errorf("read environment settings: %w", err)
	}
	if !ok {
		r.current = Default(r.origin)
		return r.current, nil
	}

	var saved model.EnvironmentSettings
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		r.log.Warn("discarding unreadable environment settings", zap.Error(err))
		r.current = Default(r.origin)
		return r.current, nil
	}
	r.current = Resolve(r.origin, saved.UseRealAPI, saved.ProxyEnabled)
	return r.current, nil
}

func (r *Resolver) Current() model.EnvironmentSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Resolver) Origin() string { return r.origin }

func (r *Resolver) SetUseRealAPI(v bool) (model.EnvironmentSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(v, r.current.ProxyEnabled)
}

func (r *Resolver) SetProxyEnabled(v bool) (model.EnvironmentSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(r.current.UseRealAPI, v)
}

func (r *Resolver) Apply(useRealAPI, proxyEnabled bool) (model.EnvironmentSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(useRealAPI, proxyEnabled)
}

func (r *Resolver) apply(useRealAPI, proxyEnabled bool) (model.EnvironmentSettings, error) {
	next := Resolve(r.origin, useRealAPI, proxyEnabled)
	b, err := json.Marshal(next)
	if err != nil {
		return r.current, err
	}
	if err := r.store.Set(StorageKey, string(b)); err != nil {
		return r.current, fmt.Errorf("persist environment settings: %w", err)
	}
	r.current = next
	r.log.Debug("environment changed",
		zap.Bool("use_real_api", next.UseRealAPI),
		zap.Bool("proxy_enabled", next.ProxyEnabled),
		zap.String("base_api_url", next.BaseAPIURL))
	return next, nil
}
