// Package config resolves the groupgame settings from viper and expands the
// paths they contain.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the configuration and data directories.
const AppName = "groupgame"

// ExpandPath replaces a leading ~ with the home directory and expands $VAR
// references.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

// ConfigDir is where config.yaml is looked up: $XDG_CONFIG_HOME/groupgame,
// falling back to ~/.config/groupgame.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}
