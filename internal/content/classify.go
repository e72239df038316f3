// Package content detects file content type and encoding.
package content

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileType classifies file content.
type FileType string

const (
	TypeText    FileType = "text"
	TypeBinary  FileType = "binary"
	TypeUnknown FileType = "unknown"
)

// sniffLen bounds how much of a file is read for detection.
const sniffLen = 1024

// binaryExtensions are extensions treated as binary without sniffing.
var binaryExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mkv": {}, ".mov": {},
}

// Classify detects whether a file is text or binary.
// Known-binary extensions short-circuit to binary; otherwise a bounded
// prefix is sniffed for NUL bytes and UTF-8 decodability.
func Classify(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := binaryExtensions[ext]; ok {
		return TypeBinary
	}

	sample, err := readPrefix(path, sniffLen)
	if err != nil {
		return TypeUnknown
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return TypeBinary
	}
	if validUTF8Prefix(sample) {
		return TypeText
	}
	return TypeUnknown
}

// readPrefix reads up to n bytes from the start of the file.
func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:read], nil
}

// validUTF8Prefix reports whether the sample is valid UTF-8. A sample
// cut off at the sniff bound may end mid-rune, so only then are up to
// three trailing bytes allowed to be trimmed before giving up.
func validUTF8Prefix(sample []byte) bool {
	maxTrim := 0
	if len(sample) == sniffLen {
		maxTrim = 3
	}
	for trim := 0; trim <= maxTrim && trim < len(sample); trim++ {
		if utf8.Valid(sample[:len(sample)-trim]) {
			return true
		}
	}
	return len(sample) == 0
}
