package search

import (
	"context"
	"fmt"

	"github.com/manasmbellani/search-freeplane/internal/matcher"
	"github.com/manasmbellani/search-freeplane/internal/mindmap"
)

// MapSearcher searches a single mind-map file: it parses the document,
// flattens the tree into one line per leaf chain, and runs the keyword set
// over every line. It holds no per-call state and is safe for concurrent
// use from multiple workers.
type MapSearcher struct {
	keywords        *matcher.KeywordSet
	connector       string
	replaceNewlines bool
	lineBreak       string
	logger          Logger
}

// NewMapSearcher constructs a MapSearcher. The logger is optional and can be
// nil to disable logging.
func NewMapSearcher(keywords *matcher.KeywordSet, logger Logger) *MapSearcher {
	return &MapSearcher{
		keywords:  keywords,
		connector: mindmap.DefaultConnector,
		lineBreak: matcher.DefaultLineBreakPlaceholder,
		logger:    logger,
	}
}

// NewMapSearcherWithConfig constructs a MapSearcher with explicit connector,
// newline-replacement and placeholder settings.
func NewMapSearcherWithConfig(keywords *matcher.KeywordSet, logger Logger, connector string, replaceNewlines bool, lineBreak string) *MapSearcher {
	return &MapSearcher{
		keywords:        keywords,
		connector:       connector,
		replaceNewlines: replaceNewlines,
		lineBreak:       lineBreak,
		logger:          logger,
	}
}

// Search parses the map at path leniently, flattens it, and returns every
// flattened line matching the full keyword set, highlighted. The context is
// consulted between the parse and match stages so a cancelled run abandons
// the file without doing further work.
func (s *MapSearcher) Search(ctx context.Context, path string) ([]string, error) {
	// A searcher built for validate-only runs carries no keyword set.
	if s.keywords == nil {
		return nil, fmt.Errorf("no keyword set configured")
	}

	nodes, err := mindmap.ParseFile(path, false)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := mindmap.Flatten(nodes, s.connector)
	if s.logger != nil {
		s.logger.LogDebug(fmt.Sprintf("searching map %s: %d flattened line(s)", path, len(lines)))
	}

	var matches []string
	for _, line := range lines {
		highlighted, ok := s.keywords.Highlight(line)
		if !ok {
			continue
		}
		if s.replaceNewlines {
			highlighted = matcher.ReplaceLineBreaks(highlighted, s.lineBreak)
		}
		matches = append(matches, highlighted)
	}
	return matches, nil
}

// Validate strictly parses the map at path, surfacing malformed input as an
// error. No matching is performed.
func (s *MapSearcher) Validate(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := mindmap.ParseFile(path, true)
	return err
}
