package content

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names returned by DetectEncoding.
const (
	EncodingUTF8   = "utf-8"
	EncodingUTF16  = "utf-16"
	EncodingCP1252 = "windows-1252"
	EncodingLatin1 = "latin-1"
)

// DetectEncoding probes a bounded prefix of the file against a fixed
// ordered list of encodings and returns the first that decodes. The
// final fallback is Latin-1, which decodes any byte sequence.
func DetectEncoding(path string) string {
	sample, err := readPrefix(path, sniffLen)
	if err != nil || len(sample) == 0 {
		return EncodingUTF8
	}

	if validUTF8Prefix(sample) {
		return EncodingUTF8
	}
	if hasUTF16BOM(sample) {
		return EncodingUTF16
	}
	if decodesAsCP1252(sample) {
		return EncodingCP1252
	}
	return EncodingLatin1
}

func hasUTF16BOM(sample []byte) bool {
	return len(sample) >= 2 &&
		(bytes.HasPrefix(sample, []byte{0xFF, 0xFE}) || bytes.HasPrefix(sample, []byte{0xFE, 0xFF}))
}

// decodesAsCP1252 reports whether every byte maps to a defined
// Windows-1252 code point.
func decodesAsCP1252(sample []byte) bool {
	for _, b := range sample {
		if charmap.Windows1252.DecodeByte(b) == utf8.RuneError {
			return false
		}
	}
	return true
}

// decoderFor returns the x/text decoder for a detected encoding name.
func decoderFor(name string) *encoding.Decoder {
	switch name {
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case EncodingCP1252:
		return charmap.Windows1252.NewDecoder()
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder()
	default:
		return nil // UTF-8 needs no transformation
	}
}

// ReadText reads the whole file, decoding it to UTF-8. When the content
// is not valid UTF-8 it retries with the detected fallback encoding,
// so reading never fails on encoding alone.
func ReadText(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	if utf8.Valid(raw) {
		return string(raw), EncodingUTF8, nil
	}

	name := DetectEncoding(path)
	dec := decoderFor(name)
	if dec == nil {
		// Detection said UTF-8 but the full content disagrees; fall
		// back to the byte-preserving single-byte encoding.
		name = EncodingLatin1
		dec = decoderFor(name)
	}
	decoded, err := dec.Bytes(raw)
	if err != nil {
		// Latin-1 decodes anything; use it as the last resort.
		decoded, err = decoderFor(EncodingLatin1).Bytes(raw)
		if err != nil {
			return "", "", err
		}
		name = EncodingLatin1
	}
	return string(decoded), name, nil
}

// ReadLines reads a file as decoded text split into lines. Each line
// keeps its trailing newline; the last line may lack one.
func ReadLines(path string) ([]string, string, error) {
	text, enc, err := ReadText(path)
	if err != nil {
		return nil, "", err
	}
	return SplitLines(text), enc, nil
}

// SplitLines splits text into newline-terminated lines, preserving the
// line terminators so that rejoining reproduces the input exactly.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
