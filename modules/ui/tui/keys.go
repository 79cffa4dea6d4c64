package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Tab   key.Binding
	Enter key.Binding

	// Session
	SignIn key.Binding

	// Fleet commands
	LaunchAll    key.Binding
	StartRefresh key.Binding
	StopRefresh  key.Binding
	SafeRefresh  key.Binding
	CloseAll     key.Binding
	Proxies      key.Binding
	Password     key.Binding
	Reset        key.Binding
	Refresh      key.Binding

	// Other
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next view"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "launch profile"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "sign in"),
		),
		LaunchAll: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "launch all"),
		),
		StartRefresh: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start auto-refresh"),
		),
		StopRefresh: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "stop auto-refresh"),
		),
		SafeRefresh: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "safe refresh"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "close all"),
		),
		Proxies: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "add proxies"),
		),
		Password: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change password"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset quarantine"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
