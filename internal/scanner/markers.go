package scanner

import (
	"path/filepath"
	"strings"
)

// BlockPair holds one block comment delimiter pair.
type BlockPair struct {
	Start string
	End   string
}

// Style is the marker set for one language: line markers plus block
// delimiter pairs. It is pure data looked up by file extension.
type Style struct {
	Line   []string
	Blocks []BlockPair
}

// Empty reports whether the style has no markers at all.
func (s Style) Empty() bool {
	return len(s.Line) == 0 && len(s.Blocks) == 0
}

var cStyle = Style{Line: []string{"//"}, Blocks: []BlockPair{{"/*", "*/"}}}
var hashStyle = Style{Line: []string{"#"}}

var styles = map[string]Style{
	".py":   {Line: []string{"#"}, Blocks: []BlockPair{{`"""`, `"""`}, {"'''", "'''"}}},
	".c":    cStyle,
	".h":    cStyle,
	".cpp":  cStyle,
	".hpp":  cStyle,
	".java": cStyle,
	".js":   cStyle,
	".ts":   cStyle,
	".go":   cStyle,
	".rs":   cStyle,
	".php":  cStyle,
	".rb":   {Line: []string{"#"}, Blocks: []BlockPair{{"=begin", "=end"}}},
	".sh":   hashStyle,
	".pl":   hashStyle,
	".pm":   hashStyle,
	".r":    hashStyle,
	".lua":  {Line: []string{"--"}},
	".sql":  {Line: []string{"--"}, Blocks: []BlockPair{{"/*", "*/"}}},
	".html": {Blocks: []BlockPair{{"<!--", "-->"}}},
	".xml":  {Blocks: []BlockPair{{"<!--", "-->"}}},
	".css":  {Blocks: []BlockPair{{"/*", "*/"}}},
}

// StyleForExtension returns the marker style for a file extension
// (with or without the leading dot) and whether one is known.
func StyleForExtension(ext string) (Style, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s, ok := styles[ext]
	return s, ok
}

// StyleForPath returns the marker style for a file path by extension.
func StyleForPath(path string) (Style, bool) {
	return StyleForExtension(filepath.Ext(path))
}
