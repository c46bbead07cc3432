package mindmap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseFreeplane parses a Freeplane XML map into its top-level nodes.
//
// Freeplane maps nest <node TEXT="..."> elements inside a <map> root; all
// other elements (icons, fonts, rich content, hooks) are ignored. In lenient
// mode the decoder runs non-strict and any decode error ends the parse with
// whatever partial tree has been recovered so far. In strict mode the first
// decode error is returned, so malformed maps surface loudly.
func ParseFreeplane(r io.Reader, strict bool) ([]Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = strict

	// Synthetic root collects the map's top-level nodes; the stack tracks
	// the chain of currently open <node> elements.
	root := &Node{}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if strict {
				return nil, fmt.Errorf("malformed freeplane map: %w", err)
			}
			// Best-effort recovery: keep the partial tree.
			break
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if !strings.EqualFold(el.Name.Local, "node") {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, Node{Text: nodeText(el)})
			stack = append(stack, &parent.Children[len(parent.Children)-1])
		case xml.EndElement:
			if !strings.EqualFold(el.Name.Local, "node") {
				continue
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return root.Children, nil
}

// nodeText returns the TEXT attribute of a node element, or "" when absent.
func nodeText(el xml.StartElement) string {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Name.Local, "TEXT") {
			return a.Value
		}
	}
	return ""
}
