// Package scanner implements the line/block comment state machine.
//
// A scanner processes one file's lines sequentially. Outside a block
// comment it searches each line left to right for the earliest marker
// occurring outside quoted strings; inside a block comment it searches
// only for the awaited end marker, carrying state across lines.
//
// The scanner guarantees that the number of output lines always equals
// the number of input lines, whether or not removal happens and whether
// or not a block comment is left unterminated.
package scanner

import (
	"strings"

	"github.com/VasenkovAA/codingutils/internal/logging"
)

// Kind distinguishes line and block comments.
type Kind string

const (
	KindLine  Kind = "line"
	KindBlock Kind = "block"
)

// Match is one matched comment. Columns are 0-based byte offsets;
// lines are 1-based. Raw includes the markers, Text has them stripped
// and surrounding whitespace trimmed.
type Match struct {
	Kind      Kind
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Raw       string
	Text      string
}

// Predicate decides whether a candidate match should be removed.
// It is consulted once per match, only when removal is requested.
type Predicate func(Match) bool

// Result is the outcome of one scan pass.
type Result struct {
	Lines        []string
	Matches      []Match
	Removed      int
	Unterminated int // 1-based start line of an unterminated block, 0 if none
}

// Scanner scans one file's lines for comments. Create one scanner per
// file and discard it after use; block state does not carry across
// files.
type Scanner struct {
	style         Style
	excludePrefix string
	log           *logging.Logger
	block         *blockState
}

// blockState is carried across lines while inside an unterminated
// block comment.
type blockState struct {
	pair      BlockPair
	startLine int
	startCol  int
	prefix    string // text before the start marker on the opening line
	prefixEOL string
	raw       strings.Builder // accumulated raw text including the start marker
	original  []string        // buffered original lines of the block so far
}

// New creates a scanner for the given marker style. excludePrefix, when
// non-empty, suppresses line comments whose raw text starts with it.
func New(style Style, excludePrefix string, log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Scanner{style: style, excludePrefix: excludePrefix, log: log}
}

// ScanAndStrip scans lines for comments, optionally removing accepted
// matches. Lines carry their own terminators; the output preserves
// them, and len(result.Lines) always equals len(lines).
func (s *Scanner) ScanAndStrip(lines []string, remove bool, shouldRemove Predicate) Result {
	if shouldRemove == nil {
		shouldRemove = func(Match) bool { return true }
	}
	res := Result{Lines: make([]string, 0, len(lines))}
	s.block = nil

	for i, line := range lines {
		no := i + 1
		body, eol := splitEOL(line)
		if s.block != nil {
			s.continueBlock(no, body, eol, remove, shouldRemove, &res)
		} else {
			s.scanLine(no, body, eol, 0, remove, shouldRemove, &res)
		}
	}

	if s.block != nil {
		s.flushUnterminated(remove, &res)
	}
	return res
}

// scanLine processes one line (or line remainder) in the OUTSIDE_BLOCK
// state, appending exactly one output line unless a block comment is
// opened and left unterminated on this line.
func (s *Scanner) scanLine(no int, body, eol string, colBase int, remove bool, shouldRemove Predicate, res *Result) {
	from := 0
	for {
		mk, ok := s.findMarker(body, from)
		if !ok {
			break
		}

		if !mk.isBlock {
			raw := body[mk.idx:]
			if s.excludePrefix != "" && strings.HasPrefix(raw, s.excludePrefix) {
				// Excluded line comment: suppress the match and stop
				// scanning the rest of the line.
				break
			}
			m := Match{
				Kind:      KindLine,
				StartLine: no,
				StartCol:  colBase + mk.idx,
				EndLine:   no,
				EndCol:    colBase + len(body),
				Raw:       raw,
				Text:      strings.TrimSpace(strings.TrimPrefix(raw, mk.token)),
			}
			res.Matches = append(res.Matches, m)
			if remove && shouldRemove(m) {
				res.Removed++
				body = rstrip(body[:mk.idx])
			}
			// A line comment consumes the rest of the line either way.
			break
		}

		afterStart := mk.idx + len(mk.pair.Start)
		endRel := strings.Index(body[afterStart:], mk.pair.End)
		if endRel < 0 {
			// Block opens here and does not close on this line.
			bs := &blockState{
				pair:      mk.pair,
				startLine: no,
				startCol:  colBase + mk.idx,
				prefix:    body[:mk.idx],
				prefixEOL: eol,
			}
			bs.raw.WriteString(body[mk.idx:])
			bs.raw.WriteString("\n")
			bs.original = append(bs.original, body+eol)
			s.block = bs
			return
		}

		endIdx := afterStart + endRel + len(mk.pair.End)
		raw := body[mk.idx:endIdx]
		m := Match{
			Kind:      KindBlock,
			StartLine: no,
			StartCol:  colBase + mk.idx,
			EndLine:   no,
			EndCol:    colBase + endIdx,
			Raw:       raw,
			Text:      cleanBlockText(raw, mk.pair),
		}
		res.Matches = append(res.Matches, m)
		if remove && shouldRemove(m) {
			res.Removed++
			body = body[:mk.idx] + body[endIdx:]
			from = mk.idx
		} else {
			from = endIdx
		}
	}

	res.Lines = append(res.Lines, body+eol)
}

// continueBlock processes one line in the INSIDE_BLOCK state.
func (s *Scanner) continueBlock(no int, body, eol string, remove bool, shouldRemove Predicate, res *Result) {
	bs := s.block

	idx := strings.Index(body, bs.pair.End)
	if idx < 0 {
		bs.raw.WriteString(body)
		bs.raw.WriteString("\n")
		bs.original = append(bs.original, body+eol)
		return
	}

	endIdx := idx + len(bs.pair.End)
	bs.raw.WriteString(body[:endIdx])
	raw := bs.raw.String()

	m := Match{
		Kind:      KindBlock,
		StartLine: bs.startLine,
		StartCol:  bs.startCol,
		EndLine:   no,
		EndCol:    endIdx,
		Raw:       raw,
		Text:      cleanBlockText(raw, bs.pair),
	}
	res.Matches = append(res.Matches, m)
	s.block = nil

	if remove && shouldRemove(m) {
		res.Removed++
		res.Lines = append(res.Lines, rstrip(bs.prefix)+bs.prefixEOL)
		// One blank line per fully-consumed intermediate line keeps
		// line numbers stable in the output.
		for _, orig := range bs.original[1:] {
			_, e := splitEOL(orig)
			res.Lines = append(res.Lines, e)
		}
		// The remainder after the end marker is re-scanned as a fresh
		// outside-block line; it may contain more comments.
		s.scanLine(no, body[endIdx:], eol, endIdx, remove, shouldRemove, res)
		return
	}

	res.Lines = append(res.Lines, bs.original...)
	res.Lines = append(res.Lines, body+eol)
}

// flushUnterminated resolves EOF inside a block comment: a warning is
// logged, no match is recorded, and the output keeps the input's line
// count.
func (s *Scanner) flushUnterminated(remove bool, res *Result) {
	bs := s.block
	s.block = nil
	res.Unterminated = bs.startLine
	s.log.Warn("unterminated block comment",
		logging.Int("start_line", bs.startLine),
		logging.String("marker", bs.pair.Start))

	if !remove {
		res.Lines = append(res.Lines, bs.original...)
		return
	}
	res.Lines = append(res.Lines, rstrip(bs.prefix)+bs.prefixEOL)
	for _, orig := range bs.original[1:] {
		_, eol := splitEOL(orig)
		res.Lines = append(res.Lines, eol)
	}
}

// marker is one marker occurrence found on a line.
type marker struct {
	idx     int
	token   string
	isBlock bool
	pair    BlockPair
}

// findMarker locates the earliest marker at or after from that sits
// outside quoted-string regions: ", ', and ` each open a string closed
// by the same unescaped character, and a backslash inside a string
// skips the next character. When a line marker and a block start both
// match at the same position, the longer token wins.
//
// Callers guarantee that from is a position where string state is
// clean: the start of the line, the splice point of a removed block,
// or the byte just past a kept block's end marker. Tracking therefore
// starts at from; walking earlier text would treat matched comment
// content as code and let its quotes poison the state.
func (s *Scanner) findMarker(body string, from int) (marker, bool) {
	inString := false
	var quote byte

	for i := from; i < len(body); i++ {
		c := body[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}

		var mk marker
		for _, tok := range s.style.Line {
			if len(tok) > len(mk.token) && strings.HasPrefix(body[i:], tok) {
				mk = marker{idx: i, token: tok}
			}
		}
		for _, pair := range s.style.Blocks {
			if len(pair.Start) > len(mk.token) && strings.HasPrefix(body[i:], pair.Start) {
				mk = marker{idx: i, token: pair.Start, isBlock: true, pair: pair}
			}
		}
		if mk.token != "" {
			return mk, true
		}

		if c == '"' || c == '\'' || c == '`' {
			inString = true
			quote = c
		}
	}
	return marker{}, false
}

// cleanBlockText strips the block delimiters and trims whitespace.
func cleanBlockText(raw string, pair BlockPair) string {
	text := strings.TrimPrefix(raw, pair.Start)
	text = strings.TrimSuffix(text, pair.End)
	return strings.TrimSpace(text)
}

// splitEOL separates a line's content from its terminator.
func splitEOL(line string) (body, eol string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// rstrip trims trailing whitespace, leaving leading indentation alone.
func rstrip(s string) string {
	return strings.TrimRight(s, " \t\r\f\v")
}
