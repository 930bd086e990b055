package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)
}

func TestLog_FormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()
	current().now = fixedClock

	Info(CatMatch, "apply", "pattern", `\d+`, "count", 2)

	require.Equal(t, "2025-12-06T10:45:00 [INFO] [match] apply pattern=\\d+ count=2\n", buf.String())
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	Warn(CatUI, "resize", "width")

	require.Contains(t, buf.String(), "width=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	SetMinLevel(LevelWarn)
	Debug(CatConfig, "hidden")
	Info(CatConfig, "hidden")
	Error(CatConfig, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[ERROR] [config] shown")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	SetEnabled(false)
	Error(CatCache, "dropped")
	require.Empty(t, buf.String())

	SetEnabled(true)
	Error(CatCache, "kept")
	require.Contains(t, buf.String(), "kept")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	ErrorErr(CatWatch, "read failed", os.ErrNotExist, "path", "sample.txt")
	ErrorErr(CatWatch, "no error", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "path=sample.txt error=file does not exist")
	require.Contains(t, lines[1], "error=<nil>")
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatMatch, "nothing installed")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatTrace, "provider started", "exporter", "file")
	cleanup()
	Reset()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [trace] provider started exporter=file")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "debug.log"))
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
			if tt.in != "bogus" {
				require.Equal(t, strings.ToUpper(tt.in), tt.want.String())
			}
		})
	}
}
