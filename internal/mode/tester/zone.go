package tester

// Zone IDs for click-to-focus.
const (
	zonePattern = "tester:pattern"
	zoneSample  = "tester:sample"
	zoneResults = "tester:results"
)

// zoneForPane maps a pane to its zone ID.
func zoneForPane(p Pane) string {
	switch p {
	case PanePattern:
		return zonePattern
	case PaneSample:
		return zoneSample
	default:
		return zoneResults
	}
}
