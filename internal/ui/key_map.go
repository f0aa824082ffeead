package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	detect  key.Binding
	history key.Binding
	account key.Binding
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	submit  key.Binding
	text    key.Binding
	face    key.Binding
	capture key.Binding
	good    key.Binding
	bad     key.Binding
	restart key.Binding
	refresh key.Binding
	nextTab key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		detect:  key.NewBinding(key.WithKeys("d", "1"), key.WithHelp("d", "detect")),
		history: key.NewBinding(key.WithKeys("h", "2"), key.WithHelp("h", "history")),
		account: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "account")),
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyze")),
		text:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "text mode")),
		face:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "face mode")),
		capture: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "capture")),
		good:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "good match")),
		bad:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "poor match")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new analysis")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		nextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.detect, k.history, k.account, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.detect, k.history, k.account},
		{k.text, k.face, k.submit},
		{k.up, k.down, k.enter, k.back},
		{k.good, k.bad, k.restart, k.quit},
	}
}
