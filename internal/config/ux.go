package config

// Theme names accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, light or dark. Auto inspects COLORFGBG.
	Theme string `yaml:"theme"`

	// FocusColor paints the ORP letter and its caret. Empty uses the theme.
	FocusColor string `yaml:"focus_color,omitempty"`

	// ShowProgress draws a progress bar above the status line.
	ShowProgress bool `yaml:"show_progress"`

	// ShowHelp starts with the full key help expanded.
	ShowHelp bool `yaml:"show_help"`

	// Caret draws a ^ under the focus letter in focus mode.
	Caret bool `yaml:"caret"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:        ThemeAuto,
		ShowProgress: true,
		ShowHelp:     false,
		Caret:        true,
	}
}
