package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/julianstephens/chorewheel/internal/tui/components/chorelist"
)

// KeyMap holds the board's global bindings. Up and Down are handled by the
// chore list and only appear here for the help view.
type KeyMap struct {
	Tab, ShiftTab key.Binding
	Left, Right   key.Binding
	Up, Down      key.Binding
	Quit, Help    key.Binding
	Done          key.Binding
	Switch        key.Binding
	Refresh       key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      bind("tab", "next tab", "tab"),
		ShiftTab: bind("shift+tab", "prev tab", "shift+tab"),
		Left:     bind("h", "prev tab", "h"),
		Right:    bind("l", "next tab", "l"),
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Help:     bind("?", "toggle help", "?"),
		Done:     chorelist.DefaultKeyMap().Done,
		Switch:   bind("p", "switch person", "p"),
		Refresh:  bind("r", "refresh", "r"),
	}
}
