package syntax

import "sort"

// LineIndex maps byte offsets to 1-based line numbers. It is an ascending
// list of line-start offsets: offset 0, then one entry just after every line
// break. Build it once per analysis pass and reuse it.
type LineIndex []int

// BuildLineIndex scans source once and records every line start.
func BuildLineIndex(source []byte) LineIndex {
	starts := LineIndex{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineAt returns the 1-based line containing offset: the greatest recorded
// line start that is <= offset. Offsets before the first start clamp to
// line 1.
func (ix LineIndex) LineAt(offset int) int {
	if len(ix) == 0 {
		return 1
	}
	// First start strictly greater than offset; the line is the one before.
	i := sort.Search(len(ix), func(i int) bool { return ix[i] > offset })
	if i == 0 {
		return 1
	}
	return i
}
