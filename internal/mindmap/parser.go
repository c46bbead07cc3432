package mindmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format represents the format of a mind-map file.
type Format int

const (
	// FormatFreeplane represents a Freeplane XML map (.mm).
	FormatFreeplane Format = iota
	// FormatMarkdown represents a Markdown outline (.md, .markdown).
	FormatMarkdown
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	default:
		return "freeplane"
	}
}

// DetectFormat picks the parser for a file based on its extension. Markdown
// extensions map to the outline parser; everything else is treated as a
// Freeplane XML map, which keeps the original .mm default intact.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatFreeplane
	}
}

// ParseFile parses the mind-map document at path into its top-level nodes.
// When strict is set, malformed documents surface as errors; otherwise
// parsing recovers as much of the tree as it can.
func ParseFile(path string, strict bool) ([]Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a map file: %s", path)
	}

	switch DetectFormat(path) {
	case FormatMarkdown:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return NewMarkdownParser().Parse(data)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return ParseFreeplane(f, strict)
	}
}
