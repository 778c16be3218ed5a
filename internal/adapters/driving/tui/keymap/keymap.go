// Package keymap defines the TUI keybindings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the TUI reacts to.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Rerun  key.Binding

	// NextSource and PrevSource cycle sources in the highlighted text view.
	NextSource key.Binding
	PrevSource key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:       bind("q", "quit", "q", "ctrl+c"),
		Help:       bind("?", "help", "?"),
		Back:       bind("esc", "back", "esc"),
		Up:         bind("↑/k", "up", "up", "k"),
		Down:       bind("↓/j", "down", "down", "j"),
		Select:     bind("enter", "show matches", "enter"),
		Rerun:      bind("r", "re-run", "r"),
		NextSource: bind("n", "next source", "n", "tab"),
		PrevSource: bind("p", "prev source", "p", "shift+tab"),
	}
}

// ShortHelp is shown in the status bar outside the report and source views.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k *KeyMap) ReportHelp() []key.Binding {
	return []key.Binding{k.Select, k.Rerun, k.Quit}
}

func (k *KeyMap) SourceHelp() []key.Binding {
	return []key.Binding{k.NextSource, k.PrevSource, k.Back}
}

// FullHelp groups every binding into columns for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextSource, k.PrevSource, k.Back},
		{k.Rerun, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of the binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
