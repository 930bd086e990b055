package highlight

import "unicode/utf8"

// runeOffsets maps rune indices to byte offsets in text. The result has one
// entry per rune plus a final len(text), so text[offs[a]:offs[b]] is the
// substring covering runes a through b-1. Each invalid byte counts as one
// rune, the same way the engine sees it after a []rune conversion.
func runeOffsets(text string) []int {
	offs := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		offs = append(offs, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return append(offs, len(text))
}
