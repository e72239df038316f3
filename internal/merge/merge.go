// Package merge assembles multiple files into one output with per-file
// headers.
package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/VasenkovAA/codingutils/internal/content"
	"github.com/VasenkovAA/codingutils/internal/fileutil"
	"github.com/VasenkovAA/codingutils/internal/logging"
)

const separator = "============================================================"

// Merger merges files relative to a root directory.
type Merger struct {
	root string
	log  *logging.Logger
}

// New creates a merger. root anchors the relative paths written into
// headers; log may be nil.
func New(root string, log *logging.Logger) (*Merger, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Merger{root: absRoot, log: log}, nil
}

// ResolveFiles validates an explicit file list, warning about and
// dropping entries that are not regular files. The order is preserved.
func (m *Merger) ResolveFiles(paths []string) []string {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			m.log.Warn("file not found, skipping", logging.String("path", p))
			continue
		}
		files = append(files, p)
	}
	return files
}

// Merge writes the banner and every file's header plus content to w.
// Unreadable files get an error placeholder instead of content; they
// never abort the merge. Returns the number of files whose content
// could not be read.
func (m *Merger) Merge(w io.Writer, files []string) (int, error) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	if _, err := fmt.Fprintf(w, "MERGED FILES: %d files\n", len(sorted)); err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "MERGE DATE: %s\n", time.Now().Format(time.RFC1123))
	fmt.Fprintf(w, "ROOT DIRECTORY: %s\n", m.root)
	fmt.Fprintf(w, "%s\n\n", separator)

	errored := 0
	for _, path := range sorted {
		if _, err := io.WriteString(w, m.header(path)); err != nil {
			return errored, err
		}

		text, enc, err := content.ReadText(path)
		if err != nil {
			m.log.Error("error reading file",
				logging.String("path", path), logging.Error(err))
			fmt.Fprintf(w, "[ERROR READING FILE: %v]\n", err)
			errored++
			continue
		}
		if enc != content.EncodingUTF8 {
			m.log.Debug("decoded with fallback encoding",
				logging.String("path", path), logging.String("encoding", enc))
		}

		if _, err := io.WriteString(w, text); err != nil {
			return errored, err
		}
		if text != "" && !strings.HasSuffix(text, "\n") {
			io.WriteString(w, "\n")
		}
	}
	return errored, nil
}

// Preview lists the files that would be merged, with sizes, without
// writing anything.
func (m *Merger) Preview(w io.Writer, files []string, output string) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	fmt.Fprintf(w, "PREVIEW - Found %d files that would be merged:\n", len(sorted))
	fmt.Fprintln(w, strings.Repeat("-", 80))

	var total int64
	for _, path := range sorted {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		total += size
		fmt.Fprintf(w, "%s (%s)\n", m.RelPath(path), fileutil.FormatSize(size))
	}

	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Total: %d files, %s\n", len(sorted), fileutil.FormatSize(total))
	fmt.Fprintf(w, "Output would be written to: %s\n", output)
}

// RelPath returns the path relative to the merge root, or the path
// itself when it is not under the root.
func (m *Merger) RelPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(m.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return rel
}

// header formats the per-file banner carrying the root-relative path.
func (m *Merger) header(path string) string {
	return fmt.Sprintf("\n%s\nFILE: %s\n%s\n", separator, m.RelPath(path), separator)
}
