// ABOUTME: Operator-side settings for coolclaw-admin
// ABOUTME: Optional TOML file with environment variable overrides

package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/coolclaw/coolclaw/internal/config"
	"github.com/coolclaw/coolclaw/internal/dockercli"
)

// adminConfig holds operator machine settings. Everything is optional; the
// defaults match a standard Coolify deployment.
type adminConfig struct {
	Container string `toml:"container"`
	AppDir    string `toml:"app_dir"`
}

// configPath returns the admin settings file location.
// Priority: COOLCLAW_ADMIN_CONFIG env var > XDG_CONFIG_HOME/coolclaw/admin.toml > ~/.config/coolclaw/admin.toml
func configPath() string {
	if envPath := os.Getenv("COOLCLAW_ADMIN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "admin.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "coolclaw", "admin.toml")
}

// loadAdminConfig reads the settings file. A missing file is not an error.
func loadAdminConfig(path string) (adminConfig, error) {
	var cfg adminConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildClient layers the docker exec target: defaults, then the settings
// file, then environment variables. A broken settings file is ignored rather
// than blocking the operator.
func buildClient() dockercli.Client {
	client := dockercli.FromEnv()

	cfg, err := loadAdminConfig(configPath())
	if err != nil {
		return client
	}
	if os.Getenv(config.EnvContainer) == "" && cfg.Container != "" {
		client.Container = cfg.Container
	}
	if os.Getenv(config.EnvAppDir) == "" && cfg.AppDir != "" {
		client.AppDir = cfg.AppDir
	}
	return client
}
