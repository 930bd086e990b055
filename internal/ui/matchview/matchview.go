// Package matchview renders highlight segments for the terminal.
package matchview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/ui/styles"
)

// Placeholder is shown in place of results when no text has been applied.
const Placeholder = `Enter sample text and press ctrl+s to see highlighted matches...`

// Render styles segments as plain and highlighted runs. A width above zero
// wraps the output at word boundaries, breaking words that are still too
// long.
func Render(segments []highlight.Segment, width int) string {
	return RenderWith(segments, width, styles.PlainStyle, styles.MatchStyle)
}

// RenderWith is Render with explicit styles.
func RenderWith(segments []highlight.Segment, width int, plain, match lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range segments {
		style := plain
		if seg.IsMatch {
			style = match
		}
		b.WriteString(styleLines(seg.Text, style))
	}

	out := b.String()
	if width <= 0 {
		return out
	}
	return ansi.Hardwrap(wordwrap.String(out, width), width, true)
}

// styleLines styles each line on its own. Rendering a multi-line string in
// one call pads every line to the widest one.
func styleLines(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// CountLabel formats a match total: "1 match found", "3 matches found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 match found"
	}
	return fmt.Sprintf("%d matches found", n)
}

// Results renders the full results body for res: the placeholder when no
// text is active, otherwise the rendered segments.
func Results(res highlight.Result, width int) string {
	if res.Text == "" {
		text := Placeholder
		if width > 0 {
			text = wordwrap.String(text, width)
		}
		return styleLines(text, styles.PlaceholderStyle)
	}
	return Render(res.Segments, width)
}

// Header returns the count label for res, or "" when no pattern is active.
func Header(res highlight.Result) string {
	if !res.Active {
		return ""
	}
	return CountLabel(res.Count)
}
