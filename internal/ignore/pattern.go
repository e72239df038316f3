// Package ignore implements gitignore-style pattern matching with
// last-match-wins semantics, negation, directory-only patterns, and
// ** segment wildcards.
package ignore

import (
	"strings"
)

// Pattern is a single parsed ignore pattern. It is immutable once parsed.
type Pattern struct {
	Raw      string // original pattern text
	Negated  bool   // pattern started with !
	DirOnly  bool   // pattern ended with /
	Anchored bool   // pattern started with /
	segments []string
}

// ParsePattern parses a single non-empty, non-comment ignore line.
// Returns nil for patterns that are empty after stripping markers.
func ParsePattern(line string) *Pattern {
	p := &Pattern{Raw: line}

	body := line
	if strings.HasPrefix(body, "!") {
		p.Negated = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "/") {
		p.DirOnly = true
		body = strings.TrimSuffix(body, "/")
	}
	if strings.HasPrefix(body, "/") {
		p.Anchored = true
		body = body[1:]
	}

	for _, seg := range strings.Split(body, "/") {
		if seg == "" {
			continue
		}
		p.segments = append(p.segments, seg)
	}
	if len(p.segments) == 0 {
		return nil
	}
	return p
}

// Segments returns the /-split segments of the pattern body,
// with ** segments retained literally.
func (p *Pattern) Segments() []string {
	return p.segments
}

// bare reports whether the pattern is a single segment with no path
// structure, e.g. "*.pyc" or "node_modules".
func (p *Pattern) bare() bool {
	return !p.Anchored && len(p.segments) == 1
}

// String returns a debug representation of the pattern.
func (p *Pattern) String() string {
	var flags []string
	if p.Negated {
		flags = append(flags, "negated")
	}
	if p.DirOnly {
		flags = append(flags, "dirOnly")
	}
	if p.Anchored {
		flags = append(flags, "anchored")
	}
	if len(flags) == 0 {
		return p.Raw
	}
	return p.Raw + " [" + strings.Join(flags, ",") + "]"
}
