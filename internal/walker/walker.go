// Package walker implements depth-first filesystem traversal with
// filtering, producing an ordered list of included files plus stats.
package walker

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/VasenkovAA/codingutils/internal/filter"
	"github.com/VasenkovAA/codingutils/internal/ignore"
	"github.com/VasenkovAA/codingutils/internal/logging"
)

// Stats counts traversal outcomes. It is updated in place during a walk.
type Stats struct {
	FilesFound    int `json:"files_found"`
	DirsFound     int `json:"directories_found"`
	FilesExcluded int `json:"files_excluded"`
	DirsExcluded  int `json:"directories_excluded"`
}

// Entry represents one discovered filesystem object.
type Entry struct {
	Path  string
	IsDir bool
}

// Info fetches size/mtime/permissions on demand.
func (e Entry) Info() (os.FileInfo, error) {
	return os.Stat(e.Path)
}

// Walker traverses directory trees sequentially, applying the filter
// predicate at each entry.
type Walker struct {
	cfg   *filter.Config
	rules *ignore.RuleSet // nil when no ignore file is active
	log   *logging.Logger
	Stats Stats
}

// New creates a walker. rules may be nil; log may be nil.
func New(cfg *filter.Config, rules *ignore.RuleSet, log *logging.Logger) *Walker {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Walker{cfg: cfg, rules: rules, log: log}
}

// FindFiles walks each root and returns the sorted, deduplicated list
// of included files. Non-existent roots are skipped with a warning.
func (w *Walker) FindFiles(roots []string) []string {
	seen := make(map[string]struct{})
	var files []string

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			w.log.Warn("cannot resolve root", logging.String("root", root), logging.Error(err))
			continue
		}
		info, err := os.Stat(absRoot)
		if err != nil {
			w.log.Warn("directory does not exist", logging.String("root", absRoot))
			continue
		}
		if !info.IsDir() {
			// A root that is itself a file is included as-is if it
			// passes the file checks.
			w.Stats.FilesFound++
			if filter.ShouldExclude(w.cfg, w.rules, filepath.Dir(absRoot), absRoot, false) {
				w.Stats.FilesExcluded++
				continue
			}
			w.collect(seen, &files, absRoot)
			continue
		}

		if w.cfg.Recursive {
			w.walkDir(absRoot, absRoot, 0, seen, &files)
		} else {
			w.walkSingle(absRoot, seen, &files)
		}
	}

	sort.Strings(files)
	return files
}

// walkDir recursively walks one directory at the given depth.
// Depth counts directories below the root: entries directly inside the
// root are at depth+1 relative to depth 0.
func (w *Walker) walkDir(root, dir string, depth int, seen map[string]struct{}, files *[]string) {
	if w.cfg.HasMaxDepth() && depth > w.cfg.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			w.log.Debug("permission denied", logging.String("dir", dir))
		} else {
			w.log.Debug("error accessing directory", logging.String("dir", dir), logging.Error(err))
		}
		w.Stats.DirsExcluded++
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if entry.Type()&os.ModeSymlink != 0 {
			if !w.cfg.FollowSymlinks {
				continue
			}
			resolved, err := filepath.EvalSymlinks(full)
			if err != nil {
				continue
			}
			info, err := os.Stat(resolved)
			if err != nil {
				continue
			}
			full = resolved
			isDir = info.IsDir()
		}

		if isDir {
			w.Stats.DirsFound++
			if filter.ShouldExclude(w.cfg, w.rules, root, full, true) {
				w.Stats.DirsExcluded++
				continue
			}
			w.walkDir(root, full, depth+1, seen, files)
			continue
		}

		w.Stats.FilesFound++
		if filter.ShouldExclude(w.cfg, w.rules, root, full, false) {
			w.Stats.FilesExcluded++
			continue
		}
		// Files sit one level below their directory.
		if w.cfg.HasMaxDepth() && depth+1 > w.cfg.MaxDepth {
			w.Stats.FilesExcluded++
			continue
		}
		w.collect(seen, files, full)
	}
}

// walkSingle lists files directly inside dir, non-recursively.
func (w *Walker) walkSingle(dir string, seen map[string]struct{}, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Debug("permission denied", logging.String("dir", dir))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.Stats.DirsFound++
			continue
		}
		full := filepath.Join(dir, entry.Name())
		w.Stats.FilesFound++
		if filter.ShouldExclude(w.cfg, w.rules, dir, full, false) {
			w.Stats.FilesExcluded++
			continue
		}
		w.collect(seen, files, full)
	}
}

func (w *Walker) collect(seen map[string]struct{}, files *[]string, path string) {
	if _, dup := seen[path]; dup {
		return
	}
	seen[path] = struct{}{}
	*files = append(*files, path)
}
