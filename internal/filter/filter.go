// Package filter combines ignore rules, exclusion lists, and the
// include glob into a single include/exclude decision.
package filter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/ignore"
)

// NoMaxDepth disables the depth limit.
const NoMaxDepth = -1

// Config holds file filtering options shared by all tools.
// It is immutable per run; validate it once at construction.
type Config struct {
	ExcludeDirs      []string `mapstructure:"exclude_dirs"`
	ExcludeNames     []string `mapstructure:"exclude_names"`
	ExcludePatterns  []string `mapstructure:"exclude_patterns"`
	IncludePattern   string   `mapstructure:"include_pattern"`
	MaxDepth         int      `mapstructure:"max_depth"` // NoMaxDepth for unlimited
	FollowSymlinks   bool     `mapstructure:"follow_symlinks"`
	UseIgnoreFile    bool     `mapstructure:"use_ignore_file"`
	CustomIgnoreFile string   `mapstructure:"custom_ignore_file"`
	Recursive        bool     `mapstructure:"recursive"`
}

// DefaultConfig returns a config that includes everything recursively.
func DefaultConfig() *Config {
	return &Config{
		IncludePattern: "*",
		MaxDepth:       NoMaxDepth,
		Recursive:      true,
	}
}

// Validate checks the config for invalid values. It never coerces.
func (c *Config) Validate() error {
	if c.MaxDepth < NoMaxDepth {
		return errors.NewValidationError("max_depth must be non-negative or -1 for unlimited")
	}
	if c.IncludePattern == "" {
		return errors.NewValidationError("include_pattern must not be empty")
	}
	if _, err := path.Match(c.IncludePattern, "probe"); err != nil {
		return errors.NewValidationError("include_pattern is not a valid glob: " + c.IncludePattern)
	}
	return nil
}

// HasMaxDepth reports whether a depth limit is configured.
func (c *Config) HasMaxDepth() bool {
	return c.MaxDepth != NoMaxDepth
}

// ShouldExclude decides whether a candidate entry is excluded.
// root is the traversal root used for relative path patterns; rules may
// be nil when no ignore file is active.
//
// Checks run in a fixed order and short-circuit on the first hit:
// ignore rules, directory-name exclusion, basename exclusion, path
// pattern exclusion, and finally the include glob (files only).
func ShouldExclude(cfg *Config, rules *ignore.RuleSet, root, entryPath string, isDir bool) bool {
	if rules != nil && rules.ShouldIgnore(entryPath, isDir) {
		return true
	}

	base := filepath.Base(entryPath)

	if isDir && len(cfg.ExcludeDirs) > 0 {
		for _, seg := range pathSegments(root, entryPath) {
			for _, dir := range cfg.ExcludeDirs {
				if seg == dir {
					return true
				}
			}
		}
	}

	for _, pat := range cfg.ExcludeNames {
		if globMatch(pat, base) {
			return true
		}
	}

	if len(cfg.ExcludePatterns) > 0 {
		rel := relativeTo(root, entryPath)
		for _, pat := range cfg.ExcludePatterns {
			if globMatch(pat, base) || globMatch(pat, rel) {
				return true
			}
			// Let a pattern like "docs/*" suppress the docs/ directory
			// node itself, not just its children.
			if isDir && globMatch(pat, rel+"/__probe__") {
				return true
			}
		}
	}

	// Include glob applies to files only; directories must stay
	// traversable regardless of the file include pattern.
	if !isDir && !globMatch(cfg.IncludePattern, base) {
		return true
	}

	return false
}

// pathSegments returns the root-relative path split into segments.
func pathSegments(root, entryPath string) []string {
	return strings.Split(relativeTo(root, entryPath), "/")
}

// relativeTo returns entryPath relative to root with forward slashes,
// falling back to the path itself when it is not under root.
func relativeTo(root, entryPath string) string {
	rel, err := filepath.Rel(root, entryPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(entryPath)
	}
	return filepath.ToSlash(rel)
}

func globMatch(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
