package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestTester_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "Apply uses enter", binding: Tester.Apply, expected: []string{"enter"}},
		{name: "ApplyAny uses ctrl+s", binding: Tester.ApplyAny, expected: []string{"ctrl+s"}},
		{name: "ToggleLive uses ctrl+l", binding: Tester.ToggleLive, expected: []string{"ctrl+l"}},
		{name: "Reset uses ctrl+r", binding: Tester.Reset, expected: []string{"ctrl+r"}},
		{name: "NextPane uses tab", binding: Tester.NextPane, expected: []string{"tab"}},
		{name: "PrevPane uses shift+tab", binding: Tester.PrevPane, expected: []string{"shift+tab"}},
		{name: "ScrollUp uses pgup", binding: Tester.ScrollUp, expected: []string{"pgup"}},
		{name: "ScrollDown uses pgdown", binding: Tester.ScrollDown, expected: []string{"pgdown"}},
		{name: "Quit uses ctrl+c", binding: Tester.Quit, expected: []string{"ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

// Printable keys would be swallowed by the text inputs.
func TestTester_NoPrintableBindings(t *testing.T) {
	for _, row := range Tester.FullHelp() {
		for _, b := range row {
			for _, k := range b.Keys() {
				require.Greater(t, len(k), 1, "binding %q would shadow text input", k)
			}
		}
	}
}

func TestTester_HelpText(t *testing.T) {
	for _, b := range Tester.ShortHelp() {
		help := b.Help()
		require.NotEmpty(t, help.Key)
		require.NotEmpty(t, help.Desc)
	}
	require.Len(t, Tester.FullHelp(), 4)
}

func TestResetForTesting(t *testing.T) {
	defer ResetForTesting()

	Tester.Quit = key.NewBinding(key.WithKeys("ctrl+q"))
	require.Equal(t, []string{"ctrl+q"}, Tester.Quit.Keys())

	ResetForTesting()
	require.Equal(t, []string{"ctrl+c"}, Tester.Quit.Keys())
}
