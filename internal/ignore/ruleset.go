package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/VasenkovAA/codingutils/internal/logging"
)

// IgnoreFileName is the ignore file discovered automatically in the
// target directory and its ancestors.
const IgnoreFileName = ".codingutilsignore"

type cacheKey struct {
	path string
	dir  bool
}

// RuleSet owns an ordered sequence of patterns rooted at a directory.
// Patterns are evaluated in file order and the last matching pattern
// wins; a negated pattern forces the running result back to "keep".
//
// Decisions are cached per (absolute path, node kind). The kind is part
// of the key because the same path string can be probed both as a file
// and as a directory. The cache does not track filesystem mutation
// between probes.
type RuleSet struct {
	root     string
	fileName string
	patterns []*Pattern
	cache    map[cacheKey]bool
	log      *logging.Logger
}

// NewRuleSet creates a rule set rooted at root. The root is used to
// compute path-relative matching; paths outside it are never ignored.
func NewRuleSet(root string, log *logging.Logger) (*RuleSet, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RuleSet{
		root:     absRoot,
		fileName: IgnoreFileName,
		cache:    make(map[cacheKey]bool),
		log:      log,
	}, nil
}

// Root returns the directory relative to which patterns are matched.
func (rs *RuleSet) Root() string {
	return rs.root
}

// SetFileName overrides the ignore file name used by auto-discovery.
func (rs *RuleSet) SetFileName(name string) {
	if name != "" {
		rs.fileName = name
	}
}

// Len returns the number of loaded patterns.
func (rs *RuleSet) Len() int {
	return len(rs.patterns)
}

// Load reads patterns from filePath, or, when filePath is empty,
// auto-discovers ignore files by walking upward from the root through
// its parent directories and loading every one found.
//
// Discovery order is nearest-first: the ignore file in the root is
// loaded before the one in its parent, and so on up the chain. The
// order is deterministic and covered by tests.
//
// Returns true if at least one pattern was loaded. An unreadable file
// contributes no patterns and is logged as a warning.
func (rs *RuleSet) Load(filePath string) bool {
	if filePath != "" {
		return rs.loadFile(filePath)
	}

	loaded := false
	dir := rs.root
	for {
		candidate := filepath.Join(dir, rs.fileName)
		if _, err := os.Stat(candidate); err == nil {
			if rs.loadFile(candidate) {
				loaded = true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return loaded
}

// loadFile parses one ignore file: one pattern per line, blank lines
// and #-comment lines skipped.
func (rs *RuleSet) loadFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		rs.log.Warn("could not read ignore file",
			logging.String("path", path), logging.Error(err))
		return false
	}
	defer f.Close()

	added := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if p := ParsePattern(line); p != nil {
			rs.patterns = append(rs.patterns, p)
			added = true
		}
	}
	if err := sc.Err(); err != nil {
		rs.log.Warn("error reading ignore file",
			logging.String("path", path), logging.Error(err))
	}
	if added {
		rs.invalidate()
		rs.log.Debug("loaded ignore file",
			logging.String("path", path), logging.Int("patterns", len(rs.patterns)))
	}
	return added
}

// AddPattern appends a single pattern, invalidating cached decisions.
func (rs *RuleSet) AddPattern(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	if p := ParsePattern(line); p != nil {
		rs.patterns = append(rs.patterns, p)
		rs.invalidate()
	}
}

func (rs *RuleSet) invalidate() {
	rs.cache = make(map[cacheKey]bool)
}

// ShouldIgnore reports whether the given path should be ignored.
// The path may be absolute or relative to the working directory; it is
// resolved against the rule set root. Paths outside the root are never
// ignored. The decision is cached per (path, node kind).
func (rs *RuleSet) ShouldIgnore(p string, isDir bool) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}

	key := cacheKey{path: abs, dir: isDir}
	if cached, ok := rs.cache[key]; ok {
		return cached
	}

	result := rs.evaluate(abs, isDir)
	rs.cache[key] = result
	return result
}

func (rs *RuleSet) evaluate(abs string, isDir bool) bool {
	rel, err := filepath.Rel(rs.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	if rel == "." {
		// Never ignore the root itself.
		return false
	}

	segs := strings.Split(filepath.ToSlash(rel), "/")

	ignored := false
	for _, pat := range rs.patterns {
		if !patternMatches(pat, segs, isDir) {
			continue
		}
		// Last match wins; negation re-includes.
		ignored = !pat.Negated
	}
	return ignored
}

// patternMatches applies one pattern (its un-negated form) to a path
// given as root-relative segments.
func patternMatches(p *Pattern, segs []string, isDir bool) bool {
	// Bare directory-only pattern, e.g. "node_modules/": the name may
	// match the directory itself or any ancestor directory segment.
	// A file can only match through its parent segments, never by its
	// own name.
	if p.DirOnly && p.bare() {
		name := p.segments[0]
		parents := segs
		if !isDir {
			parents = segs[:len(segs)-1]
		}
		for _, seg := range parents {
			if matchSegment(name, seg) {
				return true
			}
		}
		return false
	}

	// Bare basename pattern, e.g. "*.pyc": final segment only.
	if p.bare() {
		return matchSegment(p.segments[0], segs[len(segs)-1])
	}

	// Path pattern: full segment-sequence match, anchored at the root.
	if MatchSegments(segs, p.segments) {
		if p.DirOnly && !isDir {
			return false
		}
		return true
	}
	// A pattern that matches an ancestor directory also covers
	// everything beneath it.
	for i := 1; i < len(segs); i++ {
		if MatchSegments(segs[:i], p.segments) {
			return true
		}
	}
	return false
}
