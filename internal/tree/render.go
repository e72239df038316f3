package tree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats supported by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var dirColor = color.New(color.FgBlue, color.Bold)

// Render writes the tree to w in the requested format.
func Render(w io.Writer, root *Node, format string, colored bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(root)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(root)
	case FormatText:
		RenderText(w, root, colored)
		return nil
	default:
		return fmt.Errorf("unsupported tree format: %s", format)
	}
}

// RenderText writes the classic connector-drawn tree.
func RenderText(w io.Writer, root *Node, colored bool) {
	fmt.Fprintf(w, "%s/\n", dirName(root.Name, colored))
	renderChildren(w, root, "", colored)
}

func renderChildren(w io.Writer, node *Node, prefix string, colored bool) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		switch {
		case child.Denied:
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.Name)
		case child.IsDir:
			fmt.Fprintf(w, "%s%s%s/\n", prefix, connector, dirName(child.Name, colored))
			renderChildren(w, child, childPrefix, colored)
		default:
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.Name)
		}
	}
}

func dirName(name string, colored bool) string {
	if colored {
		return dirColor.Sprint(name)
	}
	return name
}
