// Package config loads the YAML configuration shared by every command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"apiexplorer/internal/environment"
	"apiexplorer/internal/logger"
	"apiexplorer/internal/mock"
)

const (
	EnvConfig       = "APIEXPLORER_CONFIG"
	EnvServerURL    = "APIEXPLORER_SERVER_URL"
	EnvRemoteOrigin = "APIEXPLORER_REMOTE_ORIGIN"
	EnvStorageDir   = "APIEXPLORER_STORAGE_DIR"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Remote  RemoteConfig  `yaml:"remote"`
	Mock    MockConfig    `yaml:"mock"`
	Client  ClientConfig  `yaml:"client"`
	Storage StorageConfig `yaml:"storage"`
	Log     logger.Config `yaml:"log"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RemoteConfig describes the real campaign-management API.
type RemoteConfig struct {
	Origin string `yaml:"origin"`
	// Timeout bounds every remote call made by the dispatcher and the proxy
	// gateway. 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
}

type MockConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// ClientConfig is used by the explorer and the call command to resolve
// relative URLs such as /api/v1/... against the local server.
type ClientConfig struct {
	ServerURL string `yaml:"server_url"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // json, sqlite, memory
	Dir    string `yaml:"dir"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Remote: RemoteConfig{
			Origin:  environment.DefaultRemoteOrigin,
			Timeout: 30 * time.Second,
		},
		Mock:    MockConfig{Delay: mock.DefaultDelay},
		Client:  ClientConfig{ServerURL: "http://localhost:5000"},
		Storage: StorageConfig{Driver: "json"},
		Log: logger.Config{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load overlays the file at path on top of Default, then applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.Client.ServerURL = v
	}
	if v := os.Getenv(EnvRemoteOrigin); v != "" {
		c.Remote.Origin = v
	}
	if v := os.Getenv(EnvStorageDir); v != "" {
		c.Storage.Dir = v
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Remote.Origin == "" {
		return fmt.Errorf("remote.origin is required")
	}
	switch c.Storage.Driver {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("storage.driver %q: want json, sqlite or memory", c.Storage.Driver)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
