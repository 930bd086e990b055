// Package tester implements the interactive regex tester: a pattern input,
// a sample text editor, and a results pane showing highlighted matches.
package tester

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/keys"
	"github.com/zjrosen/rexview/internal/log"
)

// Pane identifies a focusable pane.
type Pane int

const (
	// PanePattern is the regex input.
	PanePattern Pane = iota
	// PaneSample is the sample text editor.
	PaneSample
	// PaneResults is the highlighted output.
	PaneResults

	paneCount
)

// Config configures a tester model.
type Config struct {
	Highlighter *highlight.Highlighter

	// Initial inputs. When Pattern or Text is set the model applies once on
	// creation.
	Pattern string
	Text    string

	Live      bool // apply on every edit
	ShowCount bool // show "N matches found" in the results title
	WrapWidth int  // wrap results at this width; 0 wraps at the pane width

	// SamplePath is the file the sample was loaded from, if any.
	SamplePath string
	// SampleChanges signals reloads of SamplePath. Nil disables watching.
	SampleChanges <-chan struct{}

	Context context.Context
}

// Model holds the tester state.
type Model struct {
	ctx context.Context
	hl  *highlight.Highlighter

	// Components
	pattern textinput.Model
	sample  textarea.Model
	results viewport.Model
	help    help.Model

	// State
	focus     Pane
	live      bool
	showCount bool
	wrapWidth int

	// result is the last successful apply. A failed apply leaves it in
	// place and sets errMsg instead.
	result highlight.Result
	errMsg string

	samplePath    string
	sampleChanges <-chan struct{}
	status        string
	statusIsError bool

	// Dimensions
	width  int
	height int
}

// New creates a tester model.
func New(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	hl := cfg.Highlighter
	if hl == nil {
		hl = highlight.New(highlight.Options{})
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = `Enter regex pattern (e.g., \d+)`
	ti.CharLimit = 0
	ti.SetValue(cfg.Pattern)

	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "Enter or paste text to search within..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetValue(cfg.Text)

	m := Model{
		ctx:           ctx,
		hl:            hl,
		pattern:       ti,
		sample:        ta,
		results:       viewport.New(0, 0),
		help:          help.New(),
		live:          cfg.Live,
		showCount:     cfg.ShowCount,
		wrapWidth:     cfg.WrapWidth,
		samplePath:    cfg.SamplePath,
		sampleChanges: cfg.SampleChanges,
	}
	m.pattern.Focus()

	if cfg.SamplePath != "" {
		m.status = "loaded " + filepath.Base(cfg.SamplePath)
	}
	if cfg.Pattern != "" || cfg.Text != "" {
		m.apply()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenCmd(m.ctx, m.sampleChanges))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case SampleChangedMsg:
		log.Debug(log.CatWatch, "sample file changed", "path", m.samplePath)
		return m, tea.Batch(loadSampleCmd(m.samplePath), listenCmd(m.ctx, m.sampleChanges))

	case SampleLoadedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatWatch, "sample reload failed", msg.Err, "path", msg.Path)
			m.setStatus("reload failed: "+msg.Err.Error(), true)
			return m, nil
		}
		m.sample.SetValue(msg.Text)
		m.setStatus("reloaded "+filepath.Base(msg.Path), false)
		m.apply()
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleKeyMsg routes global bindings first, then forwards to the focused
// component.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tester.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tester.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, keys.Tester.NextPane):
		return m, m.setFocus((m.focus + 1) % paneCount)

	case key.Matches(msg, keys.Tester.PrevPane):
		return m, m.setFocus((m.focus + paneCount - 1) % paneCount)

	case key.Matches(msg, keys.Tester.ApplyAny):
		m.apply()
		return m, nil

	case key.Matches(msg, keys.Tester.ToggleLive):
		m.live = !m.live
		log.Debug(log.CatUI, "live mode toggled", "live", m.live)
		if m.live {
			m.apply()
		}
		return m, nil

	case key.Matches(msg, keys.Tester.Reset):
		m.reset()
		return m, nil

	case key.Matches(msg, keys.Tester.ScrollUp):
		m.results.PageUp()
		return m, nil

	case key.Matches(msg, keys.Tester.ScrollDown):
		m.results.PageDown()
		return m, nil

	case m.focus == PanePattern && key.Matches(msg, keys.Tester.Apply):
		m.apply()
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleMouseMsg focuses the clicked pane and forwards wheel events to the
// results viewport.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for p := PanePattern; p < paneCount; p++ {
			if z := zone.Get(zoneForPane(p)); z != nil && z.InBounds(msg) {
				return m, m.setFocus(p)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// updateFocused forwards msg to the focused component and, in live mode,
// re-applies when an input changed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case PanePattern:
		before := m.pattern.Value()
		m.pattern, cmd = m.pattern.Update(msg)
		if m.live && m.pattern.Value() != before {
			m.apply()
		}
	case PaneSample:
		before := m.sample.Value()
		m.sample, cmd = m.sample.Update(msg)
		if m.live && m.sample.Value() != before {
			m.apply()
		}
	case PaneResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// apply runs the current inputs through the highlighter. On failure the
// previous result stays on screen and the error is shown under the pattern.
func (m *Model) apply() {
	res, err := m.hl.Apply(m.ctx, m.pattern.Value(), m.sample.Value())
	if err != nil {
		m.errMsg = formatError(err)
		return
	}
	m.errMsg = ""
	m.result = res
	m.refreshResults()
	m.results.GotoTop()
}

func (m *Model) reset() {
	m.pattern.SetValue("")
	m.sample.SetValue("")
	m.result = highlight.Result{}
	m.errMsg = ""
	m.refreshResults()
}

func (m *Model) setFocus(p Pane) tea.Cmd {
	m.focus = p
	m.pattern.Blur()
	m.sample.Blur()
	switch p {
	case PanePattern:
		return m.pattern.Focus()
	case PaneSample:
		return m.sample.Focus()
	}
	return nil
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}

// formatError renders an apply error for the line under the pattern input.
func formatError(err error) string {
	var perr *highlight.PatternError
	switch {
	case errors.As(err, &perr):
		return "Invalid regex: " + perr.Message
	case errors.Is(err, highlight.ErrMatchTimeout):
		return "Match timed out; output not updated"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}

// Live reports whether live mode is on.
func (m Model) Live() bool {
	return m.live
}

// Result returns the last successful apply result.
func (m Model) Result() highlight.Result {
	return m.result
}

// Error returns the message shown under the pattern input, if any.
func (m Model) Error() string {
	return m.errMsg
}

// PatternValue returns the pattern input contents.
func (m Model) PatternValue() string {
	return m.pattern.Value()
}

// SampleValue returns the sample editor contents.
func (m Model) SampleValue() string {
	return m.sample.Value()
}
