package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Complete     key.Binding
	Idle         key.Binding
	CardApproval key.Binding
	CardMorale   key.Binding
	CardSuppress key.Binding
	Pause        key.Binding
	Resign       key.Binding
	NewRun       key.Binding
	Leaderboard  key.Binding
	About        key.Binding
	ClearHistory key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		Complete: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "do task"),
		),
		Idle: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "slack off"),
		),
		CardApproval: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "reset approval card"),
		),
		CardMorale: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "reset morale card"),
		),
		CardSuppress: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "suppress card"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resign: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "resign"),
		),
		NewRun: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new run"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "leaderboard"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
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

// ShortHelp returns the footer help text for a screen.
func (k KeyMap) ShortHelp(s screen) string {
	switch s {
	case screenGame:
		return "↑↓ nav  enter do task  i slack off  1/2/3 cards  p pause  x resign  ? help"
	case screenResult:
		return "↑↓ scroll  n new run  l leaderboard  esc home  q quit"
	case screenLeaderboard:
		return "↑↓ scroll  c clear history  esc back  q quit"
	case screenAbout:
		return "↑↓ scroll  esc back  q quit"
	default:
		return "n new run  l leaderboard  a about  ? help  q quit"
	}
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"enter", "Do the selected task"},
		{"i", "Slack off (costs a little time)"},
		{"1", "Use a reset approval card"},
		{"2", "Use a reset morale card"},
		{"3", "Use a suppress card"},
		{"p", "Pause / resume the clock"},
		{"x", "Resign from the current run"},
		{"n", "Start a new run"},
		{"l", "Show the leaderboard"},
		{"c", "Clear history (leaderboard)"},
		{"a", "About"},
		{"esc", "Back"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
