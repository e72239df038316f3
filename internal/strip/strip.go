// Package strip drives comment detection and removal over a list of
// files: marker lookup, encoding-aware reads, scanning, and safe
// in-place rewrites.
package strip

import (
	"fmt"
	"strings"

	"github.com/VasenkovAA/codingutils/internal/content"
	"github.com/VasenkovAA/codingutils/internal/fileutil"
	"github.com/VasenkovAA/codingutils/internal/logging"
	"github.com/VasenkovAA/codingutils/internal/scanner"
)

// Options configures a strip run.
type Options struct {
	Remove        bool              // actually rewrite files; detection-only otherwise
	Backup        bool              // keep a .bak next to rewritten files
	Markers       []string          // manual line-marker override; empty = by extension
	ExcludePrefix string            // suppress line comments starting with this prefix
	ShouldRemove  scanner.Predicate // caller-supplied filter, e.g. a language filter
}

// FileResult holds the outcome for one file.
type FileResult struct {
	Path    string
	Matches []scanner.Match
	Removed int
	Skipped bool // binary file or no known marker style
	Err     error
}

// Totals aggregates a run across files.
type Totals struct {
	Files     int
	Processed int
	Skipped   int
	Errored   int
	Found     int
	Removed   int
}

// Processor processes files sequentially with a fixed set of options.
type Processor struct {
	opts Options
	log  *logging.Logger
}

// NewProcessor creates a processor. log may be nil.
func NewProcessor(opts Options, log *logging.Logger) *Processor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Processor{opts: opts, log: log}
}

// ProcessFiles runs ProcessFile over every path. A failing file never
// aborts the run; failures are counted and reported in the totals.
func (p *Processor) ProcessFiles(paths []string) ([]FileResult, Totals) {
	results := make([]FileResult, 0, len(paths))
	totals := Totals{Files: len(paths)}

	for _, path := range paths {
		res := p.ProcessFile(path)
		results = append(results, res)
		switch {
		case res.Err != nil:
			totals.Errored++
		case res.Skipped:
			totals.Skipped++
		default:
			totals.Processed++
			totals.Found += len(res.Matches)
			totals.Removed += res.Removed
		}
	}
	return results, totals
}

// ProcessFile scans one file and, when removal is enabled and comments
// were removed, rewrites it in place. The full new content is computed
// in memory before any write is attempted.
func (p *Processor) ProcessFile(path string) FileResult {
	res := FileResult{Path: path}

	style, err := p.styleFor(path)
	if err != nil {
		p.log.Error("cannot determine comment markers",
			logging.String("path", path), logging.Error(err))
		res.Err = err
		return res
	}

	if content.Classify(path) == content.TypeBinary {
		p.log.Debug("skipping binary file", logging.String("path", path))
		res.Skipped = true
		return res
	}

	lines, enc, err := content.ReadLines(path)
	if err != nil {
		p.log.Error("error reading file",
			logging.String("path", path), logging.Error(err))
		res.Err = err
		return res
	}
	if enc != content.EncodingUTF8 {
		p.log.Debug("decoded with fallback encoding",
			logging.String("path", path), logging.String("encoding", enc))
	}

	sc := scanner.New(style, p.opts.ExcludePrefix, p.log)
	scan := sc.ScanAndStrip(lines, p.opts.Remove, p.opts.ShouldRemove)
	res.Matches = scan.Matches
	res.Removed = scan.Removed

	for _, m := range scan.Matches {
		p.log.Info(fmt.Sprintf("%s:%d: %s", path, m.StartLine, m.Text))
	}

	if p.opts.Remove && scan.Removed > 0 {
		out := strings.Join(scan.Lines, "")
		if err := fileutil.SafeWrite(path, []byte(out), p.opts.Backup); err != nil {
			p.log.Error("error writing file",
				logging.String("path", path), logging.Error(err))
			res.Err = err
		}
	}
	return res
}

// styleFor resolves the marker style for a path, honoring the manual
// override.
func (p *Processor) styleFor(path string) (scanner.Style, error) {
	if len(p.opts.Markers) > 0 {
		return scanner.Style{Line: p.opts.Markers}, nil
	}
	style, ok := scanner.StyleForPath(path)
	if !ok {
		return scanner.Style{}, fmt.Errorf(
			"cannot determine comment markers for %s; use --markers to specify them manually", path)
	}
	return style, nil
}
