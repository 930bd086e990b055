package tracing

// Span names.
const (
	SpanApply = "highlight.apply"
)

// Span attribute keys.
const (
	AttrPatternLength = "pattern.length"
	AttrPatternFlags  = "pattern.flags"
	AttrTextLength    = "text.length"
	AttrMatchCount    = "match.count"
	AttrSegmentCount  = "segment.count"
	AttrCacheSize     = "cache.size"

	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Values for AttrErrorType.
const (
	ErrorTypePattern = "pattern"
	ErrorTypeTimeout = "timeout"
	ErrorTypeEngine  = "engine"
)
