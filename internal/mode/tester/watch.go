package tester

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// SampleChangedMsg is sent when the watched sample file changes on disk.
type SampleChangedMsg struct{}

// SampleLoadedMsg carries a (re)loaded sample file.
type SampleLoadedMsg struct {
	Path string
	Text string
	Err  error
}

// listenCmd waits for the next change signal. It returns nil once the
// context is cancelled or the channel is closed, which ends the listen loop.
func listenCmd(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return SampleChangedMsg{}
		}
	}
}

// loadSampleCmd reads path off the update loop.
func loadSampleCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := ReadSample(path)
		return SampleLoadedMsg{Path: path, Text: text, Err: err}
	}
}

// ReadSample reads a sample text file.
func ReadSample(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the user
	if err != nil {
		return "", fmt.Errorf("reading sample file: %w", err)
	}
	return string(data), nil
}
