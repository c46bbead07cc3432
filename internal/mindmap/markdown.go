package mindmap

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser converts a Markdown outline into a mind-map tree.
//
// Headings open branches: a heading of level N becomes a child of the most
// recent heading of a lower level. Bullet and ordered lists nest beneath the
// current heading, with nested lists extending their parent item's chain.
// Plain paragraphs become leaf nodes under the current heading so their text
// stays searchable.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a MarkdownParser with default goldmark settings.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// outlineNode is the mutable tree built while walking the Markdown AST.
type outlineNode struct {
	text     string
	level    int
	children []*outlineNode
}

func (o *outlineNode) toNode() Node {
	n := Node{Text: o.text}
	for _, c := range o.children {
		n.Children = append(n.Children, c.toNode())
	}
	return n
}

// Parse builds the top-level node list for a Markdown document.
func (p *MarkdownParser) Parse(source []byte) ([]Node, error) {
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	// Synthetic root at heading level 0; the stack tracks the open heading
	// chain so each heading attaches under the nearest shallower one.
	root := &outlineNode{level: 0}
	stack := []*outlineNode{root}

	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		switch n := block.(type) {
		case *ast.Heading:
			for len(stack) > 1 && stack[len(stack)-1].level >= n.Level {
				stack = stack[:len(stack)-1]
			}
			h := &outlineNode{text: extractText(n, source), level: n.Level}
			top := stack[len(stack)-1]
			top.children = append(top.children, h)
			stack = append(stack, h)
		case *ast.List:
			top := stack[len(stack)-1]
			top.children = append(top.children, listItems(n, source)...)
		case *ast.Paragraph:
			top := stack[len(stack)-1]
			top.children = append(top.children, &outlineNode{text: extractText(n, source)})
		}
	}

	nodes := make([]Node, 0, len(root.children))
	for _, c := range root.children {
		nodes = append(nodes, c.toNode())
	}
	return nodes, nil
}

// listItems converts a Markdown list into outline nodes, one per item, with
// nested lists becoming the item's children.
func listItems(list *ast.List, source []byte) []*outlineNode {
	var items []*outlineNode
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		item := &outlineNode{}
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch inner := c.(type) {
			case *ast.List:
				item.children = append(item.children, listItems(inner, source)...)
			default:
				// TextBlock or Paragraph carrying the item's own text.
				if item.text == "" {
					item.text = extractText(inner, source)
				}
			}
		}
		items = append(items, item)
	}
	return items
}

// extractText extracts plain text from an AST node's inline children,
// descending into emphasis, links, code spans and other inline wrappers so
// their text is not lost.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
