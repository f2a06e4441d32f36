package reader

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the reader's key bindings.
type keyMap struct {
	Toggle  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "prev"),
		),
		Faster: key.NewBinding(
			key.WithKeys("u", "up"),
			key.WithHelp("u", "wpm+"),
		),
		Slower: key.NewBinding(
			key.WithKeys("d", "down"),
			key.WithHelp("d", "wpm-"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is shown on the status line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Faster, k.Slower, k.Prev, k.Next, k.Quit}
}

// FullHelp is shown when help is expanded.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Restart},
		{k.Prev, k.Next},
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}
