package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rexview/internal/config"
	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/log"
)

// executeCommand runs the root command in a scratch directory with a fresh
// viper and flag state.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REXVIEW_DEBUG", "")
	t.Chdir(t.TempDir())

	viper.Reset()
	bindFlags()
	cfgFile, debugFlag, configErr = "", false, nil
	cfg = config.Config{}
	matchCount, matchJSON, matchColor, configInitForce = false, false, "auto", false
	_ = rootCmd.PersistentFlags().Set("flags", "")
	_ = rootCmd.PersistentFlags().Set("timeout", "0s")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMatch_PlainOutput(t *testing.T) {
	out, err := executeCommand(t, "a1b22c", "match", "--color", "never", `\d+`)
	require.NoError(t, err)
	require.Equal(t, "a1b22c", out)
}

func TestMatch_ColorAlways(t *testing.T) {
	out, err := executeCommand(t, "a1b22c", "match", "--color", "always", `\d+`)
	require.NoError(t, err)
	require.Contains(t, out, "\x1b[")
}

func TestMatch_Count(t *testing.T) {
	out, err := executeCommand(t, "a1b22c", "match", "--count", `\d+`)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestMatch_CountZeroLength(t *testing.T) {
	out, err := executeCommand(t, "ab", "match", "--count", `x*`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestMatch_JSON(t *testing.T) {
	out, err := executeCommand(t, "a1b22c", "match", "--json", `\d+`)
	require.NoError(t, err)

	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, `\d+`, got.Pattern)
	require.Equal(t, 2, got.Count)
	require.Equal(t, []highlight.Match{{Start: 1, End: 2, Value: "1"}, {Start: 3, End: 5, Value: "22"}}, got.Matches)
	require.Len(t, got.Segments, 5)
}

func TestMatch_JSONNoMatches(t *testing.T) {
	out, err := executeCommand(t, "hello", "match", "--json", `z`)
	require.NoError(t, err)
	require.Contains(t, out, `"matches": []`)
}

func TestMatch_FileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("one two three"), 0o644))

	out, err := executeCommand(t, "", "match", "--count", `\w+`, path)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestMatch_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "", "match", "a", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading input")
}

func TestMatch_InvalidPattern(t *testing.T) {
	_, err := executeCommand(t, "abc", "match", "[")

	var perr *highlight.PatternError
	require.ErrorAs(t, err, &perr)
}

func TestMatch_InvalidColor(t *testing.T) {
	_, err := executeCommand(t, "abc", "match", "--color", "sometimes", "a")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--color")
}

func TestMatch_FlagsOverride(t *testing.T) {
	out, err := executeCommand(t, "aA", "match", "--count", "--flags", "i", "a")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestMatch_InvalidFlags(t *testing.T) {
	_, err := executeCommand(t, "abc", "match", "--flags", "q", "a")
	require.Error(t, err)
	require.Contains(t, err.Error(), "match.flags")
}

func TestMatch_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("match:\n  flags: i\n"), 0o600))

	out, err := executeCommand(t, "aA", "match", "--config", path, "--count", "a")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestMatch_BadConfigFile(t *testing.T) {
	_, err := executeCommand(t, "a", "match", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "a")
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rexview.yaml")

	out, err := executeCommand(t, "", "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))

	_, err = executeCommand(t, "", "config", "init", path)
	require.Error(t, err, "existing files are not overwritten")

	_, err = executeCommand(t, "", "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	out, err := executeCommand(t, "", "config", "--config", path, "set", "match.flags", "i")
	require.NoError(t, err)
	require.Contains(t, out, "set match.flags in "+path)

	out, err = executeCommand(t, "aA", "match", "--config", path, "--count", "a")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Compiled pattern cache")
}

func TestConfigSet_DefaultPath(t *testing.T) {
	_, err := executeCommand(t, "", "config", "set", "ui.live", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(".rexview", "config.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "live: true")
}

func TestConfigSet_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "views.columns", value: "x", wantErr: "unknown config key"},
		{name: "bad flags", key: "match.flags", value: "gx", wantErr: "invalid value for match.flags"},
		{name: "bad color", key: "theme.highlight", value: "yellow", wantErr: "invalid value for theme.highlight"},
		{name: "bad duration", key: "match.timeout", value: "soon", wantErr: "invalid value for match.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")

			_, err := executeCommand(t, "", "config", "--config", path, "set", tt.key, tt.value)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)

			_, statErr := os.Stat(path)
			require.True(t, os.IsNotExist(statErr), "rejected values are not written")
		})
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	out, err := executeCommand(t, "", "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "# no config file found")
	require.Contains(t, out, "show_count: true")
	require.Contains(t, out, "expiration: 10m0s")

	_, statErr := os.Stat(".rexview")
	require.True(t, os.IsNotExist(statErr), "show must not create a config file")
}

func TestLoadConfig_LookupOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	userDir := filepath.Join(home, ".config", "rexview")
	require.NoError(t, os.MkdirAll(userDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("ui:\n  wrap_width: 40\n"), 0o600))

	var got config.Config
	require.NoError(t, loadConfig(viper.New(), "", &got))
	require.Equal(t, 40, got.UI.WrapWidth, "user config is used when no project config exists")
	require.True(t, got.UI.ShowCount, "unset keys keep their defaults")

	require.NoError(t, os.MkdirAll(".rexview", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(".rexview", "config.yaml"), []byte("ui:\n  wrap_width: 60\n"), 0o600))

	got = config.Config{}
	require.NoError(t, loadConfig(viper.New(), "", &got))
	require.Equal(t, 60, got.UI.WrapWidth, "project config wins")
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var got config.Config
	require.NoError(t, loadConfig(viper.New(), "", &got))
	require.Equal(t, config.Defaults(), got)

	_, err := os.Stat(".rexview")
	require.True(t, os.IsNotExist(err), "no config file is written implicitly")
}

func TestSetupLogging(t *testing.T) {
	defer log.Reset()
	debugFlag = false

	t.Setenv("REXVIEW_DEBUG", "")
	cleanup, err := setupLogging("test")
	require.NoError(t, err)
	cleanup()

	logPath := filepath.Join(t.TempDir(), "rexview.log")
	t.Setenv("REXVIEW_DEBUG", "1")
	t.Setenv("REXVIEW_LOG", logPath)
	cleanup, err = setupLogging("test")
	require.NoError(t, err)
	cleanup()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "rexview starting")
}

func TestColorProfile(t *testing.T) {
	for _, mode := range []string{"auto", "always", "never"} {
		_, err := colorProfile(mode, &bytes.Buffer{})
		require.NoError(t, err, mode)
	}
	_, err := colorProfile("rainbow", &bytes.Buffer{})
	require.Error(t, err)
}
