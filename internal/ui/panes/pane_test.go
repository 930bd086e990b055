package panes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestBorderedPane_Dimensions(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Content: "hello\nworld",
		Width:   20,
		Height:  5,
	})

	lines := plainLines(out)
	require.Len(t, lines, 5)
	for _, line := range lines {
		require.Equal(t, 20, ansi.StringWidth(line), "line %q", line)
	}
	require.Equal(t, "│hello             │", lines[1])
	require.Equal(t, "│world             │", lines[2])
	require.Equal(t, "│                  │", lines[3])
	require.True(t, strings.HasPrefix(lines[4], "╰"))
}

func TestBorderedPane_ClipsTallContent(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Content: "1\n2\n3\n4\n5",
		Width:   10,
		Height:  4,
	})

	lines := plainLines(out)
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "1")
	require.Contains(t, lines[2], "2")
}

func TestBorderedPane_Titles(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Width:    30,
		Height:   3,
		TopLeft:  "Pattern",
		TopRight: "live",
	})

	top := plainLines(out)[0]
	require.Equal(t, "╭─ Pattern ─────────── live ─╮", top)
	require.Equal(t, 30, ansi.StringWidth(top))
}

func TestBorderedPane_NarrowDropsRightTitle(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Width:    16,
		Height:   3,
		TopLeft:  "Pattern",
		TopRight: "3 matches",
	})

	top := plainLines(out)[0]
	require.Contains(t, top, "Pattern")
	require.NotContains(t, top, "matches")
	require.Equal(t, 16, ansi.StringWidth(top))
}

func TestBorderedPane_TruncatesLongTitle(t *testing.T) {
	out := BorderedPane(BorderConfig{
		Width:   12,
		Height:  3,
		TopLeft: "A very long pane title",
	})

	top := plainLines(out)[0]
	require.Contains(t, top, "…")
	require.Equal(t, 12, ansi.StringWidth(top))
}

func TestResolveBorderColor(t *testing.T) {
	require.NotNil(t, resolveBorderColor(BorderConfig{}))
	require.NotEqual(t,
		resolveBorderColor(BorderConfig{Focused: true}),
		resolveBorderColor(BorderConfig{Focused: false}),
	)
}
