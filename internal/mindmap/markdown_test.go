package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdownHeadings(t *testing.T) {
	source := []byte(`# Alpha
## Beta
### Gamma
## Delta
# Epsilon
`)

	nodes, err := NewMarkdownParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	alpha := nodes[0]
	assert.Equal(t, "Alpha", alpha.Text)
	require.Len(t, alpha.Children, 2)
	assert.Equal(t, "Beta", alpha.Children[0].Text)
	assert.Equal(t, "Delta", alpha.Children[1].Text)
	require.Len(t, alpha.Children[0].Children, 1)
	assert.Equal(t, "Gamma", alpha.Children[0].Children[0].Text)

	assert.Equal(t, "Epsilon", nodes[1].Text)
}

func TestParseMarkdownLists(t *testing.T) {
	source := []byte(`# Tasks
- one
- two
  - nested
`)

	nodes, err := NewMarkdownParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	tasks := nodes[0]
	require.Len(t, tasks.Children, 2)
	assert.Equal(t, "one", tasks.Children[0].Text)
	assert.Equal(t, "two", tasks.Children[1].Text)
	require.Len(t, tasks.Children[1].Children, 1)
	assert.Equal(t, "nested", tasks.Children[1].Children[0].Text)
}

func TestParseMarkdownTopLevelList(t *testing.T) {
	nodes, err := NewMarkdownParser().Parse([]byte("- x\n- y\n"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "x", nodes[0].Text)
	assert.Equal(t, "y", nodes[1].Text)
}

func TestParseMarkdownParagraphBecomesLeaf(t *testing.T) {
	source := []byte(`# Notes

free-floating text
`)

	nodes, err := NewMarkdownParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "free-floating text", nodes[0].Children[0].Text)
}

func TestParseMarkdownInlineMarkupKeepsText(t *testing.T) {
	source := []byte(`# Hello **World**
- see [the docs](http://example.com) now
- prefer ` + "`go vet`" + ` over guessing
`)

	nodes, err := NewMarkdownParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	// Text nested under emphasis, links and code spans stays searchable.
	assert.Equal(t, "Hello World", nodes[0].Text)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "see the docs now", nodes[0].Children[0].Text)
	assert.Equal(t, "prefer go vet over guessing", nodes[0].Children[1].Text)
}

func TestParseMarkdownEmptyDocument(t *testing.T) {
	nodes, err := NewMarkdownParser().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParseMarkdownFlattensToLeafLines(t *testing.T) {
	source := []byte(`# Project
## Backlog
- refactor parser
`)

	nodes, err := NewMarkdownParser().Parse(source)
	require.NoError(t, err)

	lines := Flatten(nodes, DefaultConnector)
	assert.Equal(t, []string{" --> Project --> Backlog --> refactor parser"}, lines)
}
