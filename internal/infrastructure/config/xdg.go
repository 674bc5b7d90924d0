package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "chromic"
	configFileName = "config.toml"
	schemaFileName = "config.schema.json"
	dirPerm        = 0o755
	filePerm       = 0o644
)

// GetConfigDir returns $XDG_CONFIG_HOME/chromic (default: ~/.config/chromic).
// With ENV=dev it returns .dev/chromic under the working directory.
func GetConfigDir() (string, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// GetConfigFile returns the default config file path.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
