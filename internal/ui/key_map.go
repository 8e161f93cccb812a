package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	play     key.Binding
	pause    key.Binding
	next     key.Binding
	previous key.Binding
	search   key.Binding
	submit   key.Binding
	kind     key.Binding
	more     key.Binding
	terms    key.Binding
	back     key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		pause:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "pause")),
		next:     key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next")),
		previous: key.NewBinding(key.WithKeys("b", "["), key.WithHelp("b", "previous")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		kind:     key.NewBinding(key.WithKeys("tab", "t"), key.WithHelp("tab", "track/artist")),
		more:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "show more")),
		terms:    key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "term")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		dismiss:  key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.pause, k.previous, k.next, k.search, k.more, k.terms, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.play, k.pause, k.previous, k.next},
		{k.search, k.submit, k.kind, k.back},
		{k.more, k.terms, k.quit},
	}
}
