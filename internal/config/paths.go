package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// AppName names the config and data directories.
const AppName = "corroded_rsvp"

// DefaultConfigPath returns $XDG_CONFIG_HOME/corroded_rsvp/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.yaml")
}

// DataDir returns the configured data directory or
// $XDG_DATA_HOME/corroded_rsvp, falling back to ~/.local/share.
func (c *Config) DataDir() string {
	if c.Progress.DataDir != "" {
		if expanded, err := homedir.Expand(c.Progress.DataDir); err == nil {
			return expanded
		}
		return c.Progress.DataDir
	}
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), AppName)
}

// LogsDir is where log files are written.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir(), "logs")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := homedir.Dir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}
