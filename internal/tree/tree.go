// Package tree builds and renders a filtered project structure tree.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/VasenkovAA/codingutils/internal/filter"
	"github.com/VasenkovAA/codingutils/internal/ignore"
	"github.com/VasenkovAA/codingutils/internal/logging"
)

// Node is one entry in the project tree.
type Node struct {
	Name     string  `json:"name" yaml:"name"`
	IsDir    bool    `json:"is_dir" yaml:"is_dir"`
	Size     int64   `json:"size,omitempty" yaml:"size,omitempty"`
	Denied   bool    `json:"denied,omitempty" yaml:"denied,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Stats summarizes the included portion of the tree.
type Stats struct {
	Dirs      int
	Files     int
	TotalSize int64
}

// Builder constructs trees with filtering applied.
type Builder struct {
	cfg   *filter.Config
	rules *ignore.RuleSet // nil when ignore rules are disabled
	log   *logging.Logger
}

// NewBuilder creates a tree builder. rules and log may be nil.
func NewBuilder(cfg *filter.Config, rules *ignore.RuleSet, log *logging.Logger) *Builder {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Builder{cfg: cfg, rules: rules, log: log}
}

// Build walks root and returns the filtered tree plus statistics.
func (b *Builder) Build(root string) (*Node, Stats, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, Stats{}, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, Stats{}, err
	}
	if !info.IsDir() {
		return nil, Stats{}, &os.PathError{Op: "tree", Path: absRoot, Err: os.ErrInvalid}
	}

	node := &Node{Name: filepath.Base(absRoot), IsDir: true}
	var stats Stats
	b.fill(absRoot, absRoot, node, &stats, 0)
	return node, stats, nil
}

// fill populates node with the filtered children of dir, which sits at
// depth levels below the root. Entries beyond the configured maximum
// depth are omitted from the tree and the statistics.
func (b *Builder) fill(root, dir string, node *Node, stats *Stats, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		node.Children = append(node.Children, &Node{Name: "[Permission Denied]", Denied: true})
		return
	}

	var included []os.DirEntry
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		// The .git directory is never part of a project tree.
		if isDir && entry.Name() == ".git" {
			continue
		}
		if b.cfg.HasMaxDepth() && depth+1 > b.cfg.MaxDepth {
			continue
		}
		if filter.ShouldExclude(b.cfg, b.rules, root, full, isDir) {
			continue
		}
		included = append(included, entry)
	}

	// Directories first, then case-insensitive by name.
	sort.Slice(included, func(i, j int) bool {
		di, dj := included[i].IsDir(), included[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(included[i].Name()) < strings.ToLower(included[j].Name())
	})

	for _, entry := range included {
		full := filepath.Join(dir, entry.Name())
		child := &Node{Name: entry.Name(), IsDir: entry.IsDir()}
		if entry.IsDir() {
			stats.Dirs++
			b.fill(root, full, child, stats, depth+1)
		} else {
			stats.Files++
			if info, err := entry.Info(); err == nil {
				child.Size = info.Size()
				stats.TotalSize += info.Size()
			}
		}
		node.Children = append(node.Children, child)
	}
}
