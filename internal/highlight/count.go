package highlight

import (
	"github.com/zjrosen/rexview/internal/log"
)

// CountMatches returns the number of non-overlapping matches of pattern in
// text. It never fails: an empty pattern, empty text, invalid pattern, or a
// scan error all count as zero.
func CountMatches(pattern, text string, opts Options) int {
	if pattern == "" || text == "" {
		return 0
	}
	p, err := Compile(pattern, opts)
	if err != nil {
		log.Debug(log.CatMatch, "count skipped invalid pattern", "pattern", pattern, "error", err)
		return 0
	}
	return p.Count(text)
}

// Count walks the engine's own global iteration rather than FindAll. Both
// advance one rune past a zero-length match, so the totals agree.
func (p *Pattern) Count(text string) int {
	if text == "" {
		return 0
	}

	n := 0
	m, err := p.re.FindStringMatch(text)
	for err == nil && m != nil {
		n++
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		log.Debug(log.CatMatch, "count aborted", "pattern", p.source, "error", p.timeoutError())
		return 0
	}
	return n
}
