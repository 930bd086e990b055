// Package panes renders rounded, titled panels for the tester layout.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/rexview/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures a bordered pane.
type BorderConfig struct {
	Content string // Rendered inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	TopLeft  string // Title embedded in the top border, left side
	TopRight string // Title embedded in the top border, right side

	Focused            bool
	TitleColor         lipgloss.TerminalColor // Defaults to the border color
	BorderColor        lipgloss.TerminalColor // Defaults to styles.BorderDefaultColor
	FocusedBorderColor lipgloss.TerminalColor // Defaults to styles.BorderHighlightFocusColor
}

// BorderedPane renders cfg.Content inside a rounded border. Content is
// clipped to the inner area; lines shorter than the inner width are padded
// so the right border aligns.
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg)
	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = borderColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	constrained := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(cfg.Content)
	lines := strings.Split(constrained, "\n")

	var b strings.Builder
	b.WriteString(topBorder(cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle))
	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

func resolveBorderColor(cfg BorderConfig) lipgloss.TerminalColor {
	if cfg.Focused {
		if cfg.FocusedBorderColor != nil {
			return cfg.FocusedBorderColor
		}
		return styles.BorderHighlightFocusColor
	}
	if cfg.BorderColor != nil {
		return cfg.BorderColor
	}
	return styles.BorderDefaultColor
}

// topBorder embeds titles in the top edge:
//
//	╭─ Left ──────── Right ─╮
//
// The right title is dropped first when space runs out, then the left title
// is truncated.
func topBorder(left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	if left == "" && right == "" {
		return plain
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	// "─ " + left + " " + dashes(>=1) + " " + right + " ─"
	if left != "" && right != "" && innerWidth < leftWidth+rightWidth+7 {
		right = ""
		rightWidth = 0
	}

	var parts []string
	used := 0
	if left != "" {
		avail := innerWidth - 4
		if avail < 1 {
			return plain
		}
		if leftWidth > avail {
			left = runewidth.Truncate(left, avail, "…")
			leftWidth = lipgloss.Width(left)
		}
		parts = append(parts, borderStyle.Render(borderHorizontal+" "), titleStyle.Render(left), borderStyle.Render(" "))
		used += leftWidth + 3
	}

	var tail string
	if right != "" {
		if left == "" && innerWidth < rightWidth+4 {
			return plain
		}
		tail = borderStyle.Render(" ") + titleStyle.Render(right) + borderStyle.Render(" "+borderHorizontal)
		used += rightWidth + 3
	}

	dashes := max(innerWidth-used, 0)
	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft))
	for _, p := range parts {
		b.WriteString(p)
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	b.WriteString(tail)
	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}
