package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Sync      SyncConfig      `yaml:"sync"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type StorageConfig struct {
	DataDir       string `yaml:"data_dir"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// SyncConfig seeds the remote store settings on first start. The values live
// in the local settings store afterwards and can be changed at runtime.
type SyncConfig struct {
	GitHubToken string `yaml:"github_token"`
	GitHubOwner string `yaml:"github_owner"`
	GitHubRepo  string `yaml:"github_repo"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix PROGRESSPATH_ and underscore-separated
// paths:
//
//	PROGRESSPATH_SERVER_HOST, PROGRESSPATH_SERVER_PORT, PROGRESSPATH_API_KEY,
//	PROGRESSPATH_DATA_DIR, PROGRESSPATH_MIGRATIONS_DIR,
//	PROGRESSPATH_GITHUB_TOKEN, PROGRESSPATH_GITHUB_OWNER, PROGRESSPATH_GITHUB_REPO,
//	PROGRESSPATH_TS_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROGRESSPATH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PROGRESSPATH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PROGRESSPATH_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("PROGRESSPATH_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("PROGRESSPATH_MIGRATIONS_DIR"); v != "" {
		cfg.Storage.MigrationsDir = v
	}
	if v := os.Getenv("PROGRESSPATH_GITHUB_TOKEN"); v != "" {
		cfg.Sync.GitHubToken = v
	}
	if v := os.Getenv("PROGRESSPATH_GITHUB_OWNER"); v != "" {
		cfg.Sync.GitHubOwner = v
	}
	if v := os.Getenv("PROGRESSPATH_GITHUB_REPO"); v != "" {
		cfg.Sync.GitHubRepo = v
	}
	if v := os.Getenv("PROGRESSPATH_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.MigrationsDir == "" {
		cfg.Storage.MigrationsDir = "migrations"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "progresspath"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.APIKey == "" {
		return fmt.Errorf("server.api_key is required")
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.StateDir == "" {
		return fmt.Errorf("tailscale.state_dir is required when tailscale is enabled")
	}
	return nil
}
