package tui

import "github.com/charmbracelet/bubbles/key"

type homeKeyMap struct {
	New    key.Binding
	Search key.Binding
	Reveal key.Binding
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Enter  key.Binding
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func newHomeKeyMap() homeKeyMap {
	return homeKeyMap{
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Reveal: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "reveal")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Enter:  key.NewBinding(key.WithKeys("enter")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
