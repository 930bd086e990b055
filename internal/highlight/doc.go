// Package highlight turns a regular expression evaluated over a text buffer
// into display-ready spans.
//
// The package has three pieces that are invoked once per apply action:
//
//   - FindAll scans the text left to right and returns every non-overlapping
//     match (leftmost-first, global). Zero-length matches advance the scan by
//     one rune so the scan always terminates.
//   - BuildSegments folds the match list into a minimal alternating sequence
//     of matched and unmatched Segments that concatenate back to the text.
//   - CountMatches counts matches with the same scanning policy but swallows
//     pattern errors and reports zero.
//
// Patterns use ECMAScript syntax (github.com/dlclark/regexp2). All offsets
// are rune indices into the text, not byte offsets.
//
// Highlighter bundles the three behind a compiled-pattern cache and wraps
// every apply in a tracing span.
package highlight
