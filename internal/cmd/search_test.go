package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSearchCommandFindsMatches(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "hit.mm", `<map><node TEXT="projects"><node TEXT="rotate the api key"/></node></map>`)
	writeFixture(t, dir, "miss.mm", `<map><node TEXT="groceries"><node TEXT="milk"/></node></map>`)

	out, _, err := execute(t, "search", "-k", "api key", "-f", dir, "-w", "2", "--poll-timeout", "60ms")
	require.NoError(t, err)

	assert.Contains(t, out, "hit.mm")
	assert.Contains(t, out, " --> projects --> rotate the api key")
	assert.NotContains(t, out, "miss.mm")
}

func TestSearchCommandConjunction(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "m.mm", `<map>
<node TEXT="infra">
  <node TEXT="staging db password"/>
  <node TEXT="staging hostname"/>
</node>
</map>`)

	out, _, err := execute(t, "search", "-k", "staging,,password", "-f", dir, "--poll-timeout", "60ms")
	require.NoError(t, err)

	assert.Contains(t, out, "staging db password")
	assert.NotContains(t, out, "hostname")
}

func TestSearchCommandCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "m.mm", `<map><node TEXT="An Error occurred"/></map>`)

	out, _, err := execute(t, "search", "-k", "error", "-c", "-f", dir, "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.NotContains(t, out, "Error occurred")

	out, _, err = execute(t, "search", "-k", "error", "-f", dir, "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Error occurred")
}

func TestSearchCommandSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "single.mm", `<map><node TEXT="needle"/></map>`)

	out, _, err := execute(t, "search", "-k", "needle", "-f", path, "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.Contains(t, out, "single.mm")
}

func TestSearchCommandMarkdownExtension(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "outline.md", "# Plans\n## Search\n- ship the worker pool\n")

	out, _, err := execute(t, "search", "-k", "worker pool", "-f", dir, "-e", ".md", "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.Contains(t, out, " --> Plans --> Search --> ship the worker pool")
}

func TestSearchCommandNoFiles(t *testing.T) {
	out, _, err := execute(t, "search", "-k", "x", "-f", t.TempDir(), "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.Contains(t, out, "No map files found")
}

func TestSearchCommandUnknownRoot(t *testing.T) {
	_, _, err := execute(t, "search", "-k", "x", "-f", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown file path")
}

func TestSearchCommandInvalidRegexIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "m.mm", `<map><node TEXT="content"/></map>`)

	_, _, err := execute(t, "search", "-k", "(unclosed", "-f", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid keyword pattern")
}

func TestSearchCommandRequiresKeyword(t *testing.T) {
	_, _, err := execute(t, "search", "-f", t.TempDir())
	assert.Error(t, err)
}

func TestSearchCommandInvalidWorkers(t *testing.T) {
	_, _, err := execute(t, "search", "-k", "x", "-f", t.TempDir(), "-w", "-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestSearchCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "outline.md", "# only markdown here, keyword inside\n")

	// Config file switches the default extensions to Markdown.
	cfgPath := writeFixture(t, dir, "config.yaml", "extensions:\n  - .md\npoll_timeout: 60ms\n")

	out, _, err := execute(t, "search", "-k", "keyword", "-f", dir, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "keyword inside")
}

func TestSearchCommandMalformedMapStillSearched(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.mm", `<map><node TEXT="recoverable needle">`)

	out, _, err := execute(t, "search", "-k", "needle", "-f", dir, "--poll-timeout", "60ms")
	require.NoError(t, err)
	assert.Contains(t, out, "recoverable needle")
}
