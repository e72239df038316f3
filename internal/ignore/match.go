package ignore

import (
	"path"
)

// MatchSegments reports whether pathSegs match patSegs.
//
// Matching is segment-wise: each pattern segment is matched against one
// path segment with shell-glob semantics (*, ?, [...]), so a * never
// crosses a / boundary. A ** pattern segment matches zero or more whole
// path segments, implemented as a greedy two-pointer match with
// backtracking. Comparison is case-sensitive.
//
// An empty pattern never matches. A pattern consisting of a single **
// matches everything, including an empty path.
func MatchSegments(pathSegs, patSegs []string) bool {
	if len(patSegs) == 0 {
		return false
	}

	p, s := 0, 0
	starIdx := -1 // index of the last ** seen in patSegs
	starSeg := 0  // path position the current ** expansion started at

	for s < len(pathSegs) {
		switch {
		case p < len(patSegs) && patSegs[p] == "**":
			starIdx, starSeg = p, s
			p++
		case p < len(patSegs) && matchSegment(patSegs[p], pathSegs[s]):
			p++
			s++
		case starIdx >= 0:
			// Backtrack: let the last ** consume one more segment.
			starSeg++
			s = starSeg
			p = starIdx + 1
		default:
			return false
		}
	}

	// Trailing ** segments match zero further segments.
	for p < len(patSegs) && patSegs[p] == "**" {
		p++
	}
	return p == len(patSegs)
}

// matchSegment matches one pattern segment against one path segment
// using shell-glob semantics. Malformed patterns never match.
func matchSegment(pattern, seg string) bool {
	if pattern == seg {
		return true
	}
	ok, err := path.Match(pattern, seg)
	return err == nil && ok
}
