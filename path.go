package pathrouter

import (
	"strings"

	"github.com/savsgio/gotils"
)

// getOptionalPaths returns all possible paths when the original path
// has optional segments, written {name?}.
//
// "/users/{name}/{surname?}" gives "/users/{name}" and
// "/users/{name}/{surname}". It returns nil if the path has no optional
// segments.
func getOptionalPaths(path string) []string {
	if !strings.Contains(path, "?}") {
		return nil
	}

	segments := strings.Split(path, "/")
	paths := make([]string, 0, len(segments))
	current := ""

	for i, segment := range segments {
		if i == 0 {
			continue
		}

		if isOptionalSegment(segment) {
			prefix := current
			if prefix == "" {
				prefix = "/"
			}

			if !gotils.StringSliceInclude(paths, prefix) {
				paths = append(paths, prefix)
			}

			segment = segment[:len(segment)-2] + "}"
		}

		current += "/" + segment
	}

	if !gotils.StringSliceInclude(paths, current) {
		paths = append(paths, current)
	}

	return paths
}

func isOptionalSegment(segment string) bool {
	return len(segment) > 3 &&
		segment[0] == '{' &&
		segment[1] != '*' &&
		strings.HasSuffix(segment, "?}")
}
