package radix

import (
	"github.com/grafana/regexp"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// longestCommonPrefix returns the length in bytes of the longest common prefix.
func longestCommonPrefix(a, b string) int {
	max := min(len(a), len(b))

	i := 0
	for i < max && a[i] == b[i] {
		i++
	}

	return i
}

// segmentEndIndex returns the index where the segment ends from the given path
func segmentEndIndex(path string, sep byte) int {
	end := 0
	for end < len(path) && path[end] != sep {
		end++
	}

	return end
}
