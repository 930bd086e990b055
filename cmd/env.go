package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zjrosen/rexview/internal/config"
	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/log"
	"github.com/zjrosen/rexview/internal/tracing"
	"github.com/zjrosen/rexview/internal/ui/styles"
)

const tracingShutdownTimeout = 5 * time.Second

// environment holds what every command needs after configuration is loaded.
type environment struct {
	ctx         context.Context
	highlighter *highlight.Highlighter
	provider    *tracing.Provider
	cleanups    []func()
}

// newEnvironment validates the loaded config, sets up debug logging,
// tracing and the theme, and builds the highlighter.
func newEnvironment(ctx context.Context, logPrefix string) (*environment, error) {
	if configErr != nil {
		return nil, configErr
	}
	if ctx == nil {
		ctx = context.Background()
	}

	env := &environment{ctx: ctx}

	cleanup, err := setupLogging(logPrefix)
	if err != nil {
		return nil, err
	}
	env.cleanups = append(env.cleanups, cleanup)

	if err := config.Validate(cfg); err != nil {
		env.Close()
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	styles.ApplyTheme(themeFromConfig(cfg.Theme))

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	env.provider = provider
	env.cleanups = append(env.cleanups, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	})

	hl, err := newHighlighter(cfg, provider)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.highlighter = hl
	return env, nil
}

// Close runs cleanups in reverse order.
func (e *environment) Close() {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i]()
	}
	e.cleanups = nil
}

// setupLogging enables file logging when --debug or REXVIEW_DEBUG is set.
// The log path comes from REXVIEW_LOG and defaults to debug.log.
func setupLogging(prefix string) (func(), error) {
	debug := os.Getenv("REXVIEW_DEBUG") != "" || debugFlag
	if !debug {
		return func() {}, nil
	}

	logPath := os.Getenv("REXVIEW_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "rexview starting", "version", version, "debug", true, "logPath", logPath)
	return cleanup, nil
}

func newHighlighter(c config.Config, provider *tracing.Provider) (*highlight.Highlighter, error) {
	opts, err := c.Match.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid match options: %w", err)
	}
	cache := highlight.NewCache(c.Cache.Expiration, c.Cache.CleanupInterval)
	return highlight.New(opts,
		highlight.WithCache(cache),
		highlight.WithTracer(provider.Tracer()),
	), nil
}

func themeFromConfig(t config.ThemeConfig) styles.Theme {
	return styles.Theme{
		Highlight:     t.Highlight,
		HighlightText: t.HighlightText,
		Accent:        t.Accent,
		Muted:         t.Muted,
		Error:         t.Error,
	}
}
