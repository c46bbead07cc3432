package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manasmbellani/search-freeplane/internal/matcher"
	"github.com/manasmbellani/search-freeplane/internal/mindmap"
)

func writeMap(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustCompile(t *testing.T, spec string) *matcher.KeywordSet {
	t.Helper()
	ks, err := matcher.Compile(spec, matcher.DefaultDelimiter, false)
	require.NoError(t, err)
	return ks
}

func TestMapSearcherSearch(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, "creds.mm", `<map>
<node TEXT="accounts">
  <node TEXT="prod">
    <node TEXT="password: hunter2"/>
  </node>
  <node TEXT="irrelevant"/>
</node>
</map>`)

	s := NewMapSearcher(mustCompile(t, "password"), nil)

	matches, err := s.Search(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, " --> accounts --> prod --> password: hunter2", matches[0])
}

func TestMapSearcherNoMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, "plain.mm", `<map><node TEXT="nothing here"/></map>`)

	s := NewMapSearcher(mustCompile(t, "absent"), nil)

	matches, err := s.Search(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMapSearcherMissingFile(t *testing.T) {
	s := NewMapSearcher(mustCompile(t, "x"), nil)

	_, err := s.Search(context.Background(), filepath.Join(t.TempDir(), "absent.mm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMapSearcherReplacesNewlines(t *testing.T) {
	dir := t.TempDir()
	// &#xA; survives attribute-value normalization as a literal newline.
	path := writeMap(t, dir, "multi.mm", `<map><node TEXT="first line&#xA;second line"/></map>`)

	s := NewMapSearcherWithConfig(mustCompile(t, "line"), nil,
		mindmap.DefaultConnector, true, matcher.DefaultLineBreakPlaceholder)

	matches, err := s.Search(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.NotContains(t, matches[0], "\n")
	assert.Contains(t, matches[0], `\n`)
}

func TestMapSearcherCustomConnector(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, "m.mm", `<map><node TEXT="a"><node TEXT="b"/></node></map>`)

	s := NewMapSearcherWithConfig(mustCompile(t, "b"), nil, " / ", false, matcher.DefaultLineBreakPlaceholder)

	matches, err := s.Search(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{" / a / b"}, matches)
}

func TestMapSearcherNoKeywordSet(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, "m.mm", `<map><node TEXT="anything"/></map>`)

	// A validate-only searcher has no keyword set; Search must refuse
	// cleanly rather than fall over on it.
	s := NewMapSearcher(nil, nil)

	_, err := s.Search(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keyword set")
}

func TestMapSearcherCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, "m.mm", `<map><node TEXT="match me"/></map>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMapSearcher(mustCompile(t, "match"), nil)
	_, err := s.Search(ctx, path)
	assert.Error(t, err)
}

func TestMapSearcherValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeMap(t, dir, "good.mm", `<map><node TEXT="ok"/></map>`)
	bad := writeMap(t, dir, "bad.mm", `<map><node TEXT="broken">`)

	s := NewMapSearcher(nil, nil)

	assert.NoError(t, s.Validate(context.Background(), good))
	assert.Error(t, s.Validate(context.Background(), bad))
}

func TestMapSearcherSearchRecoversMalformed(t *testing.T) {
	dir := t.TempDir()
	// The same truncated map that fails validation still yields matches in
	// a normal search via lenient parsing.
	path := writeMap(t, dir, "bad.mm", `<map><node TEXT="needle in here">`)

	s := NewMapSearcher(mustCompile(t, "needle"), nil)

	matches, err := s.Search(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
