package strip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VasenkovAA/codingutils/internal/scanner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

// TestProcessFile_DetectOnly verifies that detection leaves the file on
// disk untouched while reporting matches.
func TestProcessFile_DetectOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1  # hi\ny = 2\n")

	p := NewProcessor(Options{}, nil)
	res := p.ProcessFile(path)

	if res.Err != nil {
		t.Fatalf("ProcessFile failed: %v", res.Err)
	}
	if len(res.Matches) != 1 || res.Matches[0].Text != "hi" {
		t.Errorf("unexpected matches %+v", res.Matches)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "x = 1  # hi\ny = 2\n" {
		t.Errorf("file was modified in detect-only mode: %q", got)
	}
}

// TestProcessFile_Remove verifies the end-to-end rewrite path including
// the backup file.
func TestProcessFile_Remove(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1  # hi\ny = 2\n")

	p := NewProcessor(Options{Remove: true, Backup: true}, nil)
	res := p.ProcessFile(path)

	if res.Err != nil {
		t.Fatalf("ProcessFile failed: %v", res.Err)
	}
	if res.Removed != 1 {
		t.Errorf("expected 1 removal, got %d", res.Removed)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "x = 1\ny = 2\n" {
		t.Errorf("unexpected rewritten content %q", got)
	}
	bak, err := os.ReadFile(path + ".bak")
	if err != nil || string(bak) != "x = 1  # hi\ny = 2\n" {
		t.Errorf("expected backup with original content, got %q (%v)", bak, err)
	}
}

// TestProcessFile_NoRewriteWithoutRemovals verifies that a file with no
// comments is left alone even in remove mode.
func TestProcessFile_NoRewriteWithoutRemovals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1\n")

	p := NewProcessor(Options{Remove: true, Backup: true}, nil)
	res := p.ProcessFile(path)

	if res.Err != nil || res.Removed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("no backup should exist when nothing was removed")
	}
}

// TestProcessFile_MarkerOverride verifies --markers style processing of
// files with unknown extensions.
func TestProcessFile_MarkerOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.conf", "value = 1 ; note\n")

	p := NewProcessor(Options{Remove: true, Markers: []string{";"}}, nil)
	res := p.ProcessFile(path)

	if res.Err != nil {
		t.Fatalf("ProcessFile failed: %v", res.Err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "value = 1\n" {
		t.Errorf("unexpected content %q", got)
	}
}

// TestProcessFile_UnknownExtension verifies the error for files whose
// markers cannot be determined.
func TestProcessFile_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README", "plain text\n")

	p := NewProcessor(Options{}, nil)
	res := p.ProcessFile(path)

	if res.Err == nil {
		t.Fatal("expected an error for unknown markers")
	}
	if !strings.Contains(res.Err.Error(), "--markers") {
		t.Errorf("error should point at --markers: %v", res.Err)
	}
}

// TestProcessFile_SkipsBinary verifies binary files are skipped, not
// errored.
func TestProcessFile_SkipsBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blob.py", "x\x00y")

	p := NewProcessor(Options{}, nil)
	res := p.ProcessFile(path)

	if res.Err != nil {
		t.Fatalf("expected skip, got error %v", res.Err)
	}
	if !res.Skipped {
		t.Error("binary file should be skipped")
	}
}

// TestProcessFile_Predicate verifies that the caller predicate gates
// removal per match.
func TestProcessFile_Predicate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "a = 1 # keep\nb = 2 # drop\n")

	opts := Options{
		Remove:       true,
		ShouldRemove: func(m scanner.Match) bool { return m.Text == "drop" },
	}
	p := NewProcessor(opts, nil)
	res := p.ProcessFile(path)

	if res.Err != nil {
		t.Fatalf("ProcessFile failed: %v", res.Err)
	}
	if len(res.Matches) != 2 || res.Removed != 1 {
		t.Errorf("expected 2 matches and 1 removal, got %d/%d", len(res.Matches), res.Removed)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "a = 1 # keep\nb = 2\n" {
		t.Errorf("unexpected content %q", got)
	}
}

// TestProcessFiles_Totals verifies aggregation across a mixed batch.
func TestProcessFiles_Totals(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "a.py", "x = 1 # c\n")
	binary := writeFile(t, dir, "b.py", "\x00\x01")
	missing := filepath.Join(dir, "gone.py")
	unknown := writeFile(t, dir, "LICENSE", "text\n")

	p := NewProcessor(Options{}, nil)
	results, totals := p.ProcessFiles([]string{ok, binary, missing, unknown})

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if totals.Files != 4 || totals.Processed != 1 || totals.Skipped != 1 || totals.Errored != 2 {
		t.Errorf("unexpected totals %+v", totals)
	}
	if totals.Found != 1 {
		t.Errorf("expected 1 found comment, got %d", totals.Found)
	}
}

// TestProcessFile_Idempotent verifies that a second remove pass changes
// nothing.
func TestProcessFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1 # gone\n\"\"\"doc\n\"\"\"\ny = 2\n")

	p := NewProcessor(Options{Remove: true}, nil)
	if res := p.ProcessFile(path); res.Err != nil {
		t.Fatalf("first pass failed: %v", res.Err)
	}
	after, _ := os.ReadFile(path)

	res := p.ProcessFile(path)
	if res.Err != nil {
		t.Fatalf("second pass failed: %v", res.Err)
	}
	if res.Removed != 0 {
		t.Errorf("expected no removals on second pass, got %d", res.Removed)
	}
	again, _ := os.ReadFile(path)
	if string(again) != string(after) {
		t.Errorf("second pass changed the file: %q vs %q", again, after)
	}
}
