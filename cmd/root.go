package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rexview/internal/config"
	"github.com/zjrosen/rexview/internal/log"
	"github.com/zjrosen/rexview/internal/mode/tester"
	"github.com/zjrosen/rexview/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// configErr is set by initConfig; OnInitialize hooks cannot return errors.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "rexview",
	Short: "Interactive regular expression tester",
	Long: `rexview highlights every match of a regular expression in a sample text.

Type a pattern, paste or load some text, and press enter (or ctrl+s) to see
each match highlighted along with the total match count. Patterns use
JavaScript (ECMAScript) syntax.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .rexview/config.yaml or ~/.config/rexview/config.yaml)")
	pf.BoolVar(&debugFlag, "debug", false,
		"write debug logs (also enabled by REXVIEW_DEBUG)")
	pf.String("flags", "", "regex flags: i (ignore case), m (multiline)")
	pf.Duration("timeout", 0, "abort a scan after this long (0 disables)")

	rootCmd.Flags().StringP("pattern", "e", "", "initial pattern")
	rootCmd.Flags().StringP("file", "f", "", "load the sample text from a file")
	rootCmd.Flags().Bool("watch", false, "reload the sample file when it changes (requires --file)")
	rootCmd.Flags().Bool("live", false, "apply on every edit instead of on enter")

	bindFlags()
}

// bindFlags binds flags that override config keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("match.flags", pf.Lookup("flags"))
	_ = viper.BindPFlag("match.timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("ui.live", rootCmd.Flags().Lookup("live"))
}

func initConfig() {
	configErr = loadConfig(viper.GetViper(), cfgFile, &cfg)
}

// loadConfig reads the config into out. Lookup order when path is empty:
//  1. .rexview/config.yaml (current directory)
//  2. ~/.config/rexview/config.yaml (user config)
//
// A missing config file is not an error and nothing is written.
func loadConfig(v *viper.Viper, path string, out *config.Config) error {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(filepath.Join(".rexview", "config.yaml")); err == nil {
		v.SetConfigFile(filepath.Join(".rexview", "config.yaml"))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "rexview"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("match.flags", defaults.Match.Flags)
	v.SetDefault("match.timeout", defaults.Match.Timeout)
	v.SetDefault("ui.live", defaults.UI.Live)
	v.SetDefault("ui.show_count", defaults.UI.ShowCount)
	v.SetDefault("ui.wrap_width", defaults.UI.WrapWidth)
	v.SetDefault("theme.highlight", defaults.Theme.Highlight)
	v.SetDefault("theme.highlight_text", defaults.Theme.HighlightText)
	v.SetDefault("theme.accent", defaults.Theme.Accent)
	v.SetDefault("theme.muted", defaults.Theme.Muted)
	v.SetDefault("theme.error", defaults.Theme.Error)
	v.SetDefault("cache.expiration", defaults.Cache.Expiration)
	v.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

func runApp(cmd *cobra.Command, _ []string) error {
	env, err := newEnvironment(cmd.Context(), "rexview")
	if err != nil {
		return err
	}
	defer env.Close()

	pattern, _ := cmd.Flags().GetString("pattern")
	file, _ := cmd.Flags().GetString("file")
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, cancel := context.WithCancel(env.ctx)
	defer cancel()

	tcfg := tester.Config{
		Highlighter: env.highlighter,
		Pattern:     pattern,
		Live:        cfg.UI.Live,
		ShowCount:   cfg.UI.ShowCount,
		WrapWidth:   cfg.UI.WrapWidth,
		Context:     ctx,
	}

	if watch && file == "" {
		return errors.New("--watch requires --file")
	}
	if file != "" {
		text, err := tester.ReadSample(file)
		if err != nil {
			return err
		}
		tcfg.Text = text
		tcfg.SamplePath = file
	}
	if watch {
		w, err := watcher.New(watcher.DefaultConfig(file))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		changes, err := w.Start()
		if err != nil {
			_ = w.Stop()
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()
		tcfg.SampleChanges = changes
	}

	zone.NewGlobal()
	log.Info(log.CatUI, "starting tester", "file", file, "watch", watch, "live", cfg.UI.Live)

	p := tea.NewProgram(
		tester.New(tcfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
