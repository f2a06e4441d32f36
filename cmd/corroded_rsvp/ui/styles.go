// Package ui provides the visual styling for the corroded_rsvp reader.
// Colors come in a light and a dark palette, picked from the terminal or config.
package ui

import (
	"os"
	"strconv"
	"strings"

	"corrodedrsvp/internal/config"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightForeground = lipgloss.Color("#101F38") // Dark Blue
	LightMuted      = lipgloss.Color("#8a94a6")
	LightAccent     = lipgloss.Color("#5c8a2a") // Deep lime, readable on white

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkMuted      = lipgloss.Color("#6b7a93")
	DarkAccent     = lipgloss.Color("#8BC34A") // Lime Green

	// Focus is the ORP highlight, red in both modes
	Focus = lipgloss.Color("#e53935")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Focus      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Muted:      LightMuted,
		Accent:     LightAccent,
		Focus:      Focus,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Muted:      DarkMuted,
		Accent:     DarkAccent,
		Focus:      Focus,
		IsDark:     true,
	}
}

// DetectTheme guesses the background from COLORFGBG and falls back to light.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("RSVP_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeFor resolves the configured theme, applying a custom focus color.
func ThemeFor(cfg config.UIConfig) Theme {
	var theme Theme
	switch cfg.Theme {
	case config.ThemeDark:
		theme = DarkTheme()
	case config.ThemeLight:
		theme = LightTheme()
	default:
		theme = DetectTheme()
	}
	if cfg.FocusColor != "" {
		theme.Focus = lipgloss.Color(cfg.FocusColor)
	}
	return theme
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Word     lipgloss.Style
	Focus    lipgloss.Style
	Caret    lipgloss.Style
	Status   lipgloss.Style
	Paused   lipgloss.Style
	Playing  lipgloss.Style
	Finished lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Word: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Focus: lipgloss.NewStyle().
			Foreground(theme.Focus).
			Bold(true),

		Caret: lipgloss.NewStyle().
			Foreground(theme.Focus),

		Status: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Paused: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Playing: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Finished: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
	}
}

// Semantic Colors (same in both modes)
var (
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)
