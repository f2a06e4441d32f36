package ui

import (
	"testing"

	"corrodedrsvp/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("RSVP_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when RSVP_DARK_MODE=1")
	}

	t.Setenv("RSVP_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when RSVP_DARK_MODE is unset")
	}
}

func TestDetectTheme_COLORFGBG(t *testing.T) {
	t.Setenv("RSVP_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Errorf("background 0 should be dark")
	}
	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Errorf("background 15 should be light")
	}
	t.Setenv("COLORFGBG", "15;default;0")
	if !DetectTheme().IsDark {
		t.Errorf("three-part COLORFGBG uses the last field")
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor(config.UIConfig{Theme: config.ThemeDark}).IsDark {
		t.Errorf("explicit dark theme ignored")
	}
	if ThemeFor(config.UIConfig{Theme: config.ThemeLight}).IsDark {
		t.Errorf("explicit light theme ignored")
	}
	th := ThemeFor(config.UIConfig{Theme: config.ThemeLight, FocusColor: "#00ff00"})
	if th.Focus != lipgloss.Color("#00ff00") {
		t.Errorf("focus color override ignored: %v", th.Focus)
	}
	if LightTheme().Focus != Focus {
		t.Errorf("default focus color should be the shared red")
	}
}
