// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// TesterKeyMap defines the keybindings for the regex tester.
type TesterKeyMap struct {
	// Actions
	Apply      key.Binding
	ApplyAny   key.Binding
	ToggleLive key.Binding
	Reset      key.Binding

	// Focus
	NextPane key.Binding
	PrevPane key.Binding

	// Results scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Tester holds the active tester keybindings.
var Tester = DefaultTesterKeyMap()

// DefaultTesterKeyMap returns the default keybindings.
func DefaultTesterKeyMap() TesterKeyMap {
	return TesterKeyMap{
		// Enter inserts a newline in the sample text, so it only applies from
		// the pattern input. ApplyAny works from every pane.
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ApplyAny: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "apply"),
		),
		ToggleLive: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle live"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),

		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),

		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k TesterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ApplyAny, k.NextPane, k.ToggleLive, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k TesterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.ApplyAny, k.ToggleLive, k.Reset}, // Actions
		{k.NextPane, k.PrevPane},                     // Focus
		{k.ScrollUp, k.ScrollDown},                   // Results
		{k.Help, k.Quit},                             // General
	}
}

// ResetForTesting restores the default bindings.
func ResetForTesting() {
	Tester = DefaultTesterKeyMap()
}
