package highlight

// Segment is a contiguous run of text tagged as matched or unmatched.
type Segment struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"is_match"`
}

// BuildSegments partitions text into alternating unmatched and matched runs.
//
// matches must be ordered by Start, non-overlapping, and hold rune offsets
// within text, as produced by FindAll. This is not validated.
//
// Segment texts are sliced from text itself, so invalid UTF-8 survives
// unchanged. Gaps between matches become unmatched segments; adjacent unmatched runs
// (split only by a zero-length match) are merged. Zero-length matches
// produce no segment. When nothing would be emitted, the result is a single
// unmatched segment holding the whole text, even if the text is empty.
func BuildSegments(text string, matches []Match) []Segment {
	offs := runeOffsets(text)
	runeCount := len(offs) - 1

	var segments []Segment
	last := 0
	for _, m := range matches {
		if m.Start > last {
			segments = appendSegment(segments, text[offs[last]:offs[m.Start]], false)
		}
		if m.End > m.Start {
			segments = appendSegment(segments, text[offs[m.Start]:offs[m.End]], true)
		}
		last = m.End
	}
	if last < runeCount {
		segments = appendSegment(segments, text[offs[last]:], false)
	}

	if len(segments) == 0 {
		return []Segment{{Text: text, IsMatch: false}}
	}
	return segments
}

// appendSegment appends a run, folding an unmatched run into a preceding
// unmatched one.
func appendSegment(segments []Segment, text string, isMatch bool) []Segment {
	if n := len(segments); n > 0 && !isMatch && !segments[n-1].IsMatch {
		segments[n-1].Text += text
		return segments
	}
	return append(segments, Segment{Text: text, IsMatch: isMatch})
}

// Join concatenates segment texts. For a BuildSegments result it returns the
// original text.
func Join(segments []Segment) string {
	n := 0
	for _, s := range segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
