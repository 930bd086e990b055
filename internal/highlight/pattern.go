package highlight

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrMatchTimeout is returned when a scan exceeds Options.Timeout.
var ErrMatchTimeout = errors.New("match timeout")

// PatternError reports a pattern that does not compile.
type PatternError struct {
	Pattern string
	Message string // diagnostic from the regex engine
}

func (e *PatternError) Error() string {
	return "invalid regex: " + e.Message
}

// Options controls how a pattern is compiled and scanned.
type Options struct {
	IgnoreCase bool          // "i"
	Multiline  bool          // "m": ^ and $ match at line breaks
	Timeout    time.Duration // zero means unbounded
}

// Flags renders the options as a JavaScript-style flag string ("im").
func (o Options) Flags() string {
	var b strings.Builder
	if o.IgnoreCase {
		b.WriteByte('i')
	}
	if o.Multiline {
		b.WriteByte('m')
	}
	return b.String()
}

// ParseFlags parses a JavaScript-style flag string into Options.
// The "g" flag is accepted and ignored because scanning is always global.
func ParseFlags(flags string) (Options, error) {
	var opts Options
	for _, f := range flags {
		switch f {
		case 'i':
			opts.IgnoreCase = true
		case 'm':
			opts.Multiline = true
		case 'g':
		default:
			return Options{}, fmt.Errorf("unsupported regex flag %q", f)
		}
	}
	return opts, nil
}

// Pattern is a compiled expression ready for scanning.
// A Pattern is safe for concurrent use.
type Pattern struct {
	source string
	opts   Options
	re     *regexp2.Regexp
}

// Compile compiles pattern with the given options.
// A syntax error is returned as *PatternError.
func Compile(pattern string, opts Options) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, engineOptions(opts))
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Message: err.Error()}
	}
	if opts.Timeout > 0 {
		re.MatchTimeout = opts.Timeout
	}
	return &Pattern{source: pattern, opts: opts, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts Options) *Pattern {
	p, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Options returns the options the pattern was compiled with.
func (p *Pattern) Options() Options {
	return p.opts
}

func engineOptions(opts Options) regexp2.RegexOptions {
	mode := regexp2.RegexOptions(regexp2.ECMAScript)
	if opts.IgnoreCase {
		mode |= regexp2.IgnoreCase
	}
	if opts.Multiline {
		mode |= regexp2.Multiline
	}
	return mode
}

// timeoutError reports a scan that ran past MatchTimeout. The only error
// the engine returns while scanning is its timeout, whose message quotes the
// whole input, so it is replaced rather than wrapped.
func (p *Pattern) timeoutError() error {
	return fmt.Errorf("%w after %v", ErrMatchTimeout, p.re.MatchTimeout)
}
