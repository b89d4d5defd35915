package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the help line.
type keyMap struct {
	Add       key.Binding
	Prev      key.Binding
	Next      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Remove    key.Binding
	Target    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6"),
			key.WithHelp("0-6", "add shape"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shrink"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new target"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Increment, k.Decrement, k.Remove, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Prev, k.Next},
		{k.Increment, k.Decrement, k.Remove},
		{k.Target, k.Help, k.Quit},
	}
}
