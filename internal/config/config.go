package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all corroded_rsvp configuration.
type Config struct {
	// Reading behaviour
	Reader ReaderConfig `yaml:"reader"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Resume positions and history
	Progress ProgressConfig `yaml:"progress"`

	// Input sources
	Source SourceConfig `yaml:"source"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ReaderConfig configures playback.
type ReaderConfig struct {
	WPM    int  `yaml:"wpm"`
	MaxWPM int  `yaml:"max_wpm"`
	Focus  bool `yaml:"focus"`
	// StartPaused leaves the reader paused on the first word.
	StartPaused bool `yaml:"start_paused"`
}

// ProgressConfig configures the resume store.
type ProgressConfig struct {
	Enabled bool `yaml:"enabled"`
	// DataDir holds progress.db and logs/. Empty means the XDG data dir.
	DataDir string `yaml:"data_dir"`
	// SaveInterval is how long after the last position change a save happens.
	SaveInterval string `yaml:"save_interval"`
	// HistoryLimit bounds the rows shown by the history command.
	HistoryLimit int `yaml:"history_limit"`
}

// SourceConfig configures input resolution.
type SourceConfig struct {
	Clipboard bool `yaml:"clipboard"`
	// FollowDebounce coalesces rapid writes to a followed file.
	FollowDebounce string `yaml:"follow_debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{
			WPM:         250,
			MaxWPM:      2000,
			Focus:       false,
			StartPaused: true,
		},
		UI: *DefaultUIConfig(),
		Progress: ProgressConfig{
			Enabled:      true,
			SaveInterval: "2s",
			HistoryLimit: 20,
		},
		Source: SourceConfig{
			Clipboard:      true,
			FollowDebounce: "250ms",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RSVP_WPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reader.WPM = n
		}
	}
	if v := os.Getenv("RSVP_FOCUS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Reader.Focus = b
		}
	}
	if v := os.Getenv("RSVP_DATA_DIR"); v != "" {
		c.Progress.DataDir = v
	}
	if os.Getenv("RSVP_DARK_MODE") == "1" {
		c.UI.Theme = ThemeDark
	}
	if v := os.Getenv("RSVP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
		c.Logging.DebugMode = true
	}
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{ThemeAuto, ThemeLight, ThemeDark}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Reader.WPM < 1 {
		return fmt.Errorf("%w: reader.wpm must be positive, got %d", ErrInvalid, c.Reader.WPM)
	}
	if c.Reader.MaxWPM != 0 && c.Reader.MaxWPM < c.Reader.WPM {
		return fmt.Errorf("%w: reader.max_wpm (%d) is below reader.wpm (%d)", ErrInvalid, c.Reader.MaxWPM, c.Reader.WPM)
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("%w: ui.theme %q (valid: %v)", ErrInvalid, c.UI.Theme, ValidThemes)
	}

	for name, v := range map[string]string{
		"progress.save_interval": c.Progress.SaveInterval,
		"source.follow_debounce": c.Source.FollowDebounce,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

// GetSaveInterval returns the progress save debounce as a duration.
func (c *Config) GetSaveInterval() time.Duration {
	d, err := time.ParseDuration(c.Progress.SaveInterval)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetFollowDebounce returns the followed-file debounce as a duration.
func (c *Config) GetFollowDebounce() time.Duration {
	d, err := time.ParseDuration(c.Source.FollowDebounce)
	if err != nil {
		return 250 * time.Millisecond
	}
	return d
}
