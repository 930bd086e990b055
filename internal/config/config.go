// Package config provides configuration types and defaults for rexview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/log"
	"github.com/zjrosen/rexview/internal/tracing"
)

// Config holds all configuration options for rexview.
type Config struct {
	Match   MatchConfig   `mapstructure:"match" yaml:"match"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// MatchConfig holds pattern compilation options.
type MatchConfig struct {
	// Flags is a JavaScript-style flag string, e.g. "im".
	Flags string `mapstructure:"flags" yaml:"flags"`

	// Timeout bounds a single scan. Zero leaves scans unbounded.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Options converts the match section into highlight options.
func (m MatchConfig) Options() (highlight.Options, error) {
	opts, err := highlight.ParseFlags(m.Flags)
	if err != nil {
		return highlight.Options{}, err
	}
	opts.Timeout = m.Timeout
	return opts, nil
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Live      bool `mapstructure:"live" yaml:"live"`             // Re-apply on every edit instead of on submit
	ShowCount bool `mapstructure:"show_count" yaml:"show_count"` // Show "N matches found" in the results header
	WrapWidth int  `mapstructure:"wrap_width" yaml:"wrap_width"` // 0 wraps to the pane width
}

// ThemeConfig holds color overrides. Empty values keep the built-in palette.
type ThemeConfig struct {
	Highlight     string `mapstructure:"highlight" yaml:"highlight"`           // Matched text background
	HighlightText string `mapstructure:"highlight_text" yaml:"highlight_text"` // Matched text foreground
	Accent        string `mapstructure:"accent" yaml:"accent"`                 // Focused borders
	Muted         string `mapstructure:"muted" yaml:"muted"`                   // Hints, placeholders, borders
	Error         string `mapstructure:"error" yaml:"error"`                   // Validation messages
}

// CacheConfig controls the compiled pattern cache.
type CacheConfig struct {
	Expiration      time.Duration `mapstructure:"expiration" yaml:"expiration"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// TracingConfig holds tracing configuration for apply actions.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/rexview/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// Provider converts the tracing section into a tracing.Config.
func (t TracingConfig) Provider() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	cfg.Exporter = t.Exporter
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	cfg.OTLPEndpoint = t.OTLPEndpoint
	cfg.SampleRate = t.SampleRate
	return cfg
}

// DefaultTracesFilePath returns ~/.config/rexview/traces/traces.jsonl or
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rexview", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Match: MatchConfig{
			Flags:   "",
			Timeout: 0,
		},
		UI: UIConfig{
			Live:      false,
			ShowCount: true,
			WrapWidth: 0,
		},
		Cache: CacheConfig{
			Expiration:      highlight.DefaultCacheExpiration,
			CleanupInterval: highlight.DefaultCacheCleanupInterval,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks every section and returns the first error found.
func Validate(cfg Config) error {
	if err := ValidateMatch(cfg.Match); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateMatch checks the flag string and timeout.
func ValidateMatch(m MatchConfig) error {
	if _, err := highlight.ParseFlags(m.Flags); err != nil {
		return fmt.Errorf("match.flags: %w", err)
	}
	if m.Timeout < 0 {
		return fmt.Errorf("match.timeout must not be negative, got %v", m.Timeout)
	}
	return nil
}

// ValidateUI checks user interface options.
func ValidateUI(ui UIConfig) error {
	if ui.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", ui.WrapWidth)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTheme checks that every color override is a hex color.
func ValidateTheme(theme ThemeConfig) error {
	colors := []struct {
		key, value string
	}{
		{"theme.highlight", theme.Highlight},
		{"theme.highlight_text", theme.HighlightText},
		{"theme.accent", theme.Accent},
		{"theme.muted", theme.Muted},
		{"theme.error", theme.Error},
	}
	for _, c := range colors {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return fmt.Errorf("%s must be a hex color like \"#FFD700\", got %q", c.key, c.value)
		}
	}
	return nil
}

// ValidateCache checks cache durations.
func ValidateCache(c CacheConfig) error {
	if c.Expiration < 0 {
		return fmt.Errorf("cache.expiration must not be negative, got %v", c.Expiration)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %v", c.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc TracingConfig) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# rexview configuration

# Pattern options
match:
  # JavaScript-style flags: i (ignore case), m (multiline ^ and $)
  flags: ""
  # Abort a scan that runs longer than this (e.g. 2s). 0 means no limit.
  timeout: 0s

# UI settings
ui:
  live: false        # Re-apply on every keystroke instead of on Enter/Ctrl+S
  show_count: true   # Show "N matches found" above the results
  wrap_width: 0      # Wrap results at this width (0 = pane width)

# Theme overrides (hex colors, empty keeps the default palette)
theme:
  # highlight: "#FCD34D"
  # highlight_text: "#000000"
  # accent: "#54A0FF"
  # muted: "#696969"
  # error: "#FF8787"

# Compiled pattern cache
cache:
  expiration: 10m
  cleanup_interval: 30m

# Tracing of apply actions
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/rexview/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// yamlDurations mirrors Config with durations rendered as strings ("10m0s")
// so the output reads back through viper.
type yamlDurations struct {
	Match struct {
		Flags   string `yaml:"flags"`
		Timeout string `yaml:"timeout"`
	} `yaml:"match"`
	UI    UIConfig    `yaml:"ui"`
	Theme ThemeConfig `yaml:"theme"`
	Cache struct {
		Expiration      string `yaml:"expiration"`
		CleanupInterval string `yaml:"cleanup_interval"`
	} `yaml:"cache"`
	Tracing TracingConfig `yaml:"tracing"`
}

// MarshalYAML implements yaml.Marshaler.
func (c Config) MarshalYAML() (any, error) {
	var out yamlDurations
	out.Match.Flags = c.Match.Flags
	out.Match.Timeout = c.Match.Timeout.String()
	out.UI = c.UI
	out.Theme = c.Theme
	out.Cache.Expiration = c.Cache.Expiration.String()
	out.Cache.CleanupInterval = c.Cache.CleanupInterval.String()
	out.Tracing = c.Tracing
	return out, nil
}
