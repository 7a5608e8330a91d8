package stats

import (
	"strconv"
	"strings"
)

// ParseCount converts a textual co-occurrence count to an integer.
// Anything unparseable (including negative text fragments that fail
// integer parsing) defaults to zero so that one bad field never aborts
// a whole load.
func ParseCount(text string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
