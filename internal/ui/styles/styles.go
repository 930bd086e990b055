// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#777777"} // Input placeholders

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#818CF8"}

	// Status
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	// Match highlighting (yellow-300 / amber-500)
	MatchBgColor   = lipgloss.AdaptiveColor{Light: "#FCD34D", Dark: "#F59E0B"}
	MatchTextColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}

	// Live mode indicator
	LiveIndicatorColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
)

// Styles built from the colors above. Rebuild after ApplyTheme.
var (
	MatchStyle       lipgloss.Style
	PlainStyle       lipgloss.Style
	PlaceholderStyle lipgloss.Style
	ErrorStyle       lipgloss.Style
	MutedStyle       lipgloss.Style
	CountStyle       lipgloss.Style
	LiveStyle        lipgloss.Style
)

func init() {
	rebuild()
}

func rebuild() {
	MatchStyle = lipgloss.NewStyle().Foreground(MatchTextColor).Background(MatchBgColor)
	PlainStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	CountStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	LiveStyle = lipgloss.NewStyle().Foreground(LiveIndicatorColor).Bold(true)
}

// Theme holds color overrides. Empty strings keep the current value.
type Theme struct {
	Highlight     string
	HighlightText string
	Accent        string
	Muted         string
	Error         string
}

// ApplyTheme applies custom theme colors from configuration.
// Empty strings are ignored, keeping the default values.
func ApplyTheme(t Theme) {
	if t.Highlight != "" {
		MatchBgColor = lipgloss.AdaptiveColor{Light: t.Highlight, Dark: t.Highlight}
	}
	if t.HighlightText != "" {
		MatchTextColor = lipgloss.AdaptiveColor{Light: t.HighlightText, Dark: t.HighlightText}
	}
	if t.Accent != "" {
		BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: t.Accent, Dark: t.Accent}
	}
	if t.Muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: t.Muted, Dark: t.Muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: t.Muted, Dark: t.Muted}
	}
	if t.Error != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: t.Error, Dark: t.Error}
	}
	rebuild()
}

// MatchStyleFor returns the match style bound to r, for output that is not
// written through the default renderer.
func MatchStyleFor(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(MatchTextColor).Background(MatchBgColor)
}
