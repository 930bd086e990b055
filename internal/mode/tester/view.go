package tester

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/rexview/internal/keys"
	"github.com/zjrosen/rexview/internal/ui/matchview"
	"github.com/zjrosen/rexview/internal/ui/panes"
	"github.com/zjrosen/rexview/internal/ui/styles"
)

const (
	// Below this width the panes stack vertically.
	sideBySideMinWidth = 80

	// Pattern pane: input line plus error line, plus borders.
	patternPaneHeight = 4

	// Status line.
	statusHeight = 1
)

// layout holds the outer dimensions of each pane.
type layout struct {
	sideBySide bool

	patternWidth, patternHeight int
	sampleWidth, sampleHeight   int
	resultsWidth, resultsHeight int
}

func (m Model) computeLayout() layout {
	bodyHeight := max(m.height-statusHeight-lipgloss.Height(m.helpView()), patternPaneHeight+6)

	if m.width >= sideBySideMinWidth {
		left := m.width / 2
		right := m.width - left
		return layout{
			sideBySide:    true,
			patternWidth:  left,
			patternHeight: patternPaneHeight,
			sampleWidth:   left,
			sampleHeight:  bodyHeight - patternPaneHeight,
			resultsWidth:  right,
			resultsHeight: bodyHeight,
		}
	}

	rest := bodyHeight - patternPaneHeight
	sample := max(rest/2, 3)
	return layout{
		patternWidth:  m.width,
		patternHeight: patternPaneHeight,
		sampleWidth:   m.width,
		sampleHeight:  sample,
		resultsWidth:  m.width,
		resultsHeight: max(rest-sample, 3),
	}
}

// resize propagates pane sizes to the components.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	l := m.computeLayout()

	m.pattern.Width = max(l.patternWidth-3, 1) // borders plus cursor cell
	m.sample.SetWidth(max(l.sampleWidth-2, 1))
	m.sample.SetHeight(max(l.sampleHeight-2, 1))
	m.results.Width = max(l.resultsWidth-2, 1)
	m.results.Height = max(l.resultsHeight-2, 1)
	m.help.Width = m.width

	m.refreshResults()
}

// refreshResults re-renders the last result into the viewport.
func (m *Model) refreshResults() {
	width := m.results.Width
	if m.wrapWidth > 0 && (width == 0 || m.wrapWidth < width) {
		width = m.wrapWidth
	}
	m.results.SetContent(matchview.Results(m.result, width))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.computeLayout()

	patternPane := zone.Mark(zonePattern, m.renderPatternPane(l))
	samplePane := zone.Mark(zoneSample, m.renderSamplePane(l))
	resultsPane := zone.Mark(zoneResults, m.renderResultsPane(l))

	var body string
	if l.sideBySide {
		left := lipgloss.JoinVertical(lipgloss.Left, patternPane, samplePane)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, resultsPane)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, patternPane, samplePane, resultsPane)
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, body, m.statusView(), m.helpView()))
}

func (m Model) renderPatternPane(l layout) string {
	errLine := ""
	if m.errMsg != "" {
		errLine = styles.ErrorStyle.Render(m.errMsg)
	}

	var right string
	if m.live {
		right = styles.LiveStyle.Render("live")
	}
	if flags := m.hl.Options().Flags(); flags != "" {
		if right != "" {
			right += " "
		}
		right += "/" + flags
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:  m.pattern.View() + "\n" + errLine,
		Width:    l.patternWidth,
		Height:   l.patternHeight,
		TopLeft:  "Regular Expression Pattern",
		TopRight: right,
		Focused:  m.focus == PanePattern,
	})
}

func (m Model) renderSamplePane(l layout) string {
	title := "Sample Text"
	if m.samplePath != "" {
		title += " (" + filepath.Base(m.samplePath) + ")"
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:  m.sample.View(),
		Width:    l.sampleWidth,
		Height:   l.sampleHeight,
		TopLeft:  title,
		TopRight: fmt.Sprintf("%d chars", uniseg.GraphemeClusterCount(m.sample.Value())),
		Focused:  m.focus == PaneSample,
	})
}

func (m Model) renderResultsPane(l layout) string {
	var right string
	if m.showCount {
		if header := matchview.Header(m.result); header != "" {
			right = styles.CountStyle.Render(header)
		}
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:  m.results.View(),
		Width:    l.resultsWidth,
		Height:   l.resultsHeight,
		TopLeft:  "Highlighted Matches",
		TopRight: right,
		Focused:  m.focus == PaneResults,
	})
}

func (m Model) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return styles.ErrorStyle.Render(m.status)
	}
	return styles.MutedStyle.Render(m.status)
}

func (m Model) helpView() string {
	return m.help.View(keys.Tester)
}
