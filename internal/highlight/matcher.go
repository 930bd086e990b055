package highlight

// Match is one located occurrence of a pattern.
// Start and End are rune offsets; End == Start for a zero-length match.
type Match struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value"`
}

// Len returns the number of runes covered by the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Empty reports whether the match is zero-length.
func (m Match) Empty() bool {
	return m.Start == m.End
}

// FindAll compiles pattern and returns every non-overlapping match in text.
// An empty pattern or empty text yields no matches and no error; the engine
// is not consulted at all in that case.
func FindAll(pattern, text string, opts Options) ([]Match, error) {
	if pattern == "" || text == "" {
		return nil, nil
	}
	p, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return p.FindAll(text)
}

// FindAll scans text from offset 0 and returns every match in increasing
// Start order. After a match the scan resumes at its end; after a
// zero-length match it resumes one rune further so the loop always makes
// progress. A zero-length match directly after a non-empty one is still
// reported. Value is always an exact substring of text, even where text is
// not valid UTF-8.
func (p *Pattern) FindAll(text string) ([]Match, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	offs := runeOffsets(text)
	var matches []Match
	for offset := 0; offset <= len(runes); {
		m, err := p.re.FindRunesMatchStartingAt(runes, offset)
		if err != nil {
			return nil, p.timeoutError()
		}
		if m == nil {
			break
		}

		start := m.Index
		end := start + m.Length
		matches = append(matches, Match{
			Start: start,
			End:   end,
			Value: text[offs[start]:offs[end]],
		})

		offset = end
		if end == start {
			offset++
		}
	}
	return matches, nil
}
