package tree

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VasenkovAA/codingutils/internal/filter"
	"github.com/VasenkovAA/codingutils/internal/ignore"
)

// makeProject builds a fixture tree:
//
//	main.go (8 bytes)
//	sub/util.go (6 bytes)
//	.git/HEAD
//	vendor/dep.go
func makeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.go":                         "package\n",
		filepath.Join("sub", "util.go"):   "func \n",
		filepath.Join(".git", "HEAD"):     "ref\n",
		filepath.Join("vendor", "dep.go"): "dep\n",
	}
	for name, content := range files {
		full := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return root
}

func childNames(n *Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

// TestBuild_Basic verifies structure, ordering, stats, and that .git is
// always dropped.
func TestBuild_Basic(t *testing.T) {
	root := makeProject(t)
	b := NewBuilder(filter.DefaultConfig(), nil, nil)

	node, stats, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !node.IsDir || node.Name != filepath.Base(root) {
		t.Errorf("unexpected root node %+v", node)
	}

	// Directories first, then files, both alphabetical.
	want := []string{"sub", "vendor", "main.go"}
	got := childNames(node)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("children = %v, want %v", got, want)
	}

	if stats.Dirs != 2 || stats.Files != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.TotalSize != 8+6+4 {
		t.Errorf("unexpected total size %d", stats.TotalSize)
	}
}

// TestBuild_WithFilters verifies exclusion pruning inside the tree.
func TestBuild_WithFilters(t *testing.T) {
	root := makeProject(t)
	cfg := filter.DefaultConfig()
	cfg.ExcludeDirs = []string{"vendor"}
	b := NewBuilder(cfg, nil, nil)

	node, stats, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, c := range node.Children {
		if c.Name == "vendor" {
			t.Error("vendor should be pruned")
		}
	}
	if stats.Dirs != 1 || stats.Files != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

// TestBuild_WithIgnoreRules verifies ignore-rule pruning.
func TestBuild_WithIgnoreRules(t *testing.T) {
	root := makeProject(t)
	rules, err := ignore.NewRuleSet(root, nil)
	if err != nil {
		t.Fatalf("NewRuleSet failed: %v", err)
	}
	rules.AddPattern("*.go")

	b := NewBuilder(filter.DefaultConfig(), rules, nil)
	node, stats, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if stats.Files != 0 {
		t.Errorf("expected no files, got %d: %v", stats.Files, childNames(node))
	}
}

// TestBuild_MaxDepth verifies that entries below the depth bound are
// left out of both the tree and the statistics.
func TestBuild_MaxDepth(t *testing.T) {
	root := t.TempDir()
	leaf := filepath.Join(root, "a", "b", "leaf.txt")
	if err := os.MkdirAll(filepath.Dir(leaf), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for _, name := range []string{leaf, filepath.Join(root, "top.txt")} {
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	cfg := filter.DefaultConfig()
	cfg.MaxDepth = 1
	b := NewBuilder(cfg, nil, nil)

	node, stats, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := []string{"a", "top.txt"}
	got := childNames(node)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("children = %v, want %v", got, want)
	}
	for _, c := range node.Children {
		if c.IsDir && len(c.Children) != 0 {
			t.Errorf("expected %q to have no children, got %v", c.Name, childNames(c))
		}
	}
	if stats.Dirs != 1 || stats.Files != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

// TestBuild_FileRoot verifies the error for a non-directory root.
func TestBuild_FileRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	b := NewBuilder(filter.DefaultConfig(), nil, nil)
	if _, _, err := b.Build(file); err == nil {
		t.Error("expected an error for a file root")
	}
}

// TestRenderText verifies the connector layout.
func TestRenderText(t *testing.T) {
	node := &Node{
		Name:  "proj",
		IsDir: true,
		Children: []*Node{
			{Name: "sub", IsDir: true, Children: []*Node{
				{Name: "util.go"},
			}},
			{Name: "main.go"},
		},
	}

	var buf bytes.Buffer
	RenderText(&buf, node, false)

	want := "proj/\n" +
		"├── sub/\n" +
		"│   └── util.go\n" +
		"└── main.go\n"
	if buf.String() != want {
		t.Errorf("RenderText output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

// TestRender_JSON verifies the JSON format round-trips the node shape.
func TestRender_JSON(t *testing.T) {
	node := &Node{Name: "proj", IsDir: true, Children: []*Node{{Name: "a.go", Size: 10}}}

	var buf bytes.Buffer
	if err := Render(&buf, node, FormatJSON, false); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var back Node
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if back.Name != "proj" || len(back.Children) != 1 || back.Children[0].Size != 10 {
		t.Errorf("unexpected round-trip %+v", back)
	}
}

// TestRender_YAML verifies the YAML format mentions the node names.
func TestRender_YAML(t *testing.T) {
	node := &Node{Name: "proj", IsDir: true, Children: []*Node{{Name: "a.go"}}}

	var buf bytes.Buffer
	if err := Render(&buf, node, FormatYAML, false); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: proj") || !strings.Contains(out, "name: a.go") {
		t.Errorf("unexpected YAML %q", out)
	}
}

// TestRender_UnknownFormat verifies the error path.
func TestRender_UnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, &Node{Name: "x"}, "xml", false); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

// TestRenderText_Denied verifies the permission-denied placeholder line.
func TestRenderText_Denied(t *testing.T) {
	node := &Node{
		Name:  "proj",
		IsDir: true,
		Children: []*Node{
			{Name: "locked", IsDir: true, Children: []*Node{
				{Name: "[Permission Denied]", Denied: true},
			}},
		},
	}

	var buf bytes.Buffer
	RenderText(&buf, node, false)
	if !strings.Contains(buf.String(), "└── [Permission Denied]") {
		t.Errorf("missing denied placeholder in:\n%s", buf.String())
	}
}
