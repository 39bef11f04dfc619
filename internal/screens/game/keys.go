package game

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/imodel/internal/ui/layout"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("Tab", "Next mode"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("⇧Tab", "Prev mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("Space", "Grab / drop"),
		),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓←→", "Move")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Check"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Let go"),
		),
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
