package highlight

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/rexview/internal/log"
	"github.com/zjrosen/rexview/internal/tracing"
)

// Result is the outcome of one apply action.
type Result struct {
	Pattern string `json:"pattern"`
	Text    string `json:"-"`
	// Active is false when no pattern was supplied; the text is shown
	// unhighlighted and no count is displayed.
	Active   bool      `json:"active"`
	Matches  []Match   `json:"matches"`
	Segments []Segment `json:"segments"`
	Count    int       `json:"count"`
}

// Highlighter runs the matcher, span builder and counter for a pair of
// inputs using a shared compiled-pattern cache.
type Highlighter struct {
	opts   Options
	cache  *Cache
	tracer trace.Tracer
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithCache shares an existing pattern cache.
func WithCache(c *Cache) Option {
	return func(h *Highlighter) {
		h.cache = c
	}
}

// WithTracer records a span for every Apply.
func WithTracer(t trace.Tracer) Option {
	return func(h *Highlighter) {
		h.tracer = t
	}
}

// New creates a Highlighter compiling patterns with opts.
func New(opts Options, options ...Option) *Highlighter {
	h := &Highlighter{opts: opts}
	for _, o := range options {
		o(h)
	}
	if h.cache == nil {
		h.cache = NewCache(DefaultCacheExpiration, DefaultCacheCleanupInterval)
	}
	if h.tracer == nil {
		h.tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return h
}

// Options returns the compile options in use.
func (h *Highlighter) Options() Options {
	return h.opts
}

// WithOptions returns a Highlighter using opts that shares h's cache and
// tracer.
func (h *Highlighter) WithOptions(opts Options) *Highlighter {
	return &Highlighter{opts: opts, cache: h.cache, tracer: h.tracer}
}

// Apply computes matches, segments and the match count for pattern over
// text. An empty pattern is not an error: the result is inactive and holds
// the text as a single unmatched segment. A pattern that fails to compile
// returns *PatternError; a scan that exceeds the timeout returns an error
// wrapping ErrMatchTimeout.
func (h *Highlighter) Apply(ctx context.Context, pattern, text string) (Result, error) {
	_, span := h.tracer.Start(ctx, tracing.SpanApply,
		trace.WithAttributes(
			attribute.Int(tracing.AttrPatternLength, utf8.RuneCountInString(pattern)),
			attribute.String(tracing.AttrPatternFlags, h.opts.Flags()),
			attribute.Int(tracing.AttrTextLength, utf8.RuneCountInString(text)),
		),
	)
	defer span.End()

	if pattern == "" {
		span.SetStatus(codes.Ok, "")
		return Result{
			Text:     text,
			Segments: BuildSegments(text, nil),
		}, nil
	}

	p, err := h.cache.Compile(pattern, h.opts)
	if err != nil {
		recordError(span, err)
		log.Debug(log.CatMatch, "apply rejected pattern", "pattern", pattern, "error", err)
		return Result{}, err
	}

	matches, err := p.FindAll(text)
	if err != nil {
		recordError(span, err)
		log.Warn(log.CatMatch, "apply scan failed", "pattern", pattern, "error", err)
		return Result{}, err
	}

	res := Result{
		Pattern:  pattern,
		Text:     text,
		Active:   true,
		Matches:  matches,
		Segments: BuildSegments(text, matches),
		Count:    p.Count(text),
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrMatchCount, res.Count),
		attribute.Int(tracing.AttrSegmentCount, len(res.Segments)),
		attribute.Int(tracing.AttrCacheSize, h.cache.Len()),
	)
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatMatch, "apply", "pattern", pattern, "matches", len(matches), "count", res.Count)
	return res, nil
}

// Count is CountMatches backed by the cache.
func (h *Highlighter) Count(pattern, text string) int {
	if pattern == "" || text == "" {
		return 0
	}
	p, err := h.cache.Compile(pattern, h.opts)
	if err != nil {
		return 0
	}
	return p.Count(text)
}

// Validate compiles pattern without scanning. An empty pattern is valid.
func (h *Highlighter) Validate(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := h.cache.Compile(pattern, h.opts)
	return err
}

func recordError(span trace.Span, err error) {
	errType := tracing.ErrorTypeEngine
	var perr *PatternError
	switch {
	case errors.As(err, &perr):
		errType = tracing.ErrorTypePattern
	case errors.Is(err, ErrMatchTimeout):
		errType = tracing.ErrorTypeTimeout
	}
	span.SetAttributes(
		attribute.String(tracing.AttrErrorType, errType),
		attribute.String(tracing.AttrErrorMessage, err.Error()),
	)
	span.SetStatus(codes.Error, err.Error())
}
