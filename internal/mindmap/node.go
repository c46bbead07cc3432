// Package mindmap models parsed mind-map documents and flattens them into
// searchable line strings.
//
// A document is a list of top-level nodes, each carrying a text value and an
// ordered list of child nodes. Flattening turns the tree into one string per
// leaf, joining every node text on the root-to-leaf chain with a connector
// token, so the rest of the pipeline can treat a document as plain lines.
package mindmap

// DefaultConnector joins node texts when flattening a chain of nodes.
const DefaultConnector = " --> "

// Node is a single node in a parsed mind-map tree. Nodes have no identity
// beyond their structural position; parsers guarantee the structure is a
// tree, never a graph.
type Node struct {
	// Text is the node's display text. May be empty.
	Text string
	// Children are the node's child nodes in document order.
	Children []Node
}

// Flatten converts the top-level nodes of a document into one string per
// leaf node, in pre-order document order. Every node on a chain contributes
// connector + text, including nodes with empty text. The number of returned
// entries always equals the number of leaves reachable from nodes.
//
// Recursion depth equals tree depth; pathologically deep documents are a
// known limitation and not guarded against.
func Flatten(nodes []Node, connector string) []string {
	lines := make([]string, 0)
	for _, n := range nodes {
		lines = flattenNode(lines, "", n, connector)
	}
	return lines
}

// flattenNode appends the flattened chains under node to lines. The prefix
// is accumulated by value so sibling subtrees never observe each other's
// suffixes.
func flattenNode(lines []string, prefix string, node Node, connector string) []string {
	prefix += connector + node.Text
	if len(node.Children) == 0 {
		return append(lines, prefix)
	}
	for _, c := range node.Children {
		lines = flattenNode(lines, prefix, c, connector)
	}
	return lines
}
