package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSearchTree lays out a small tree with text and binary files for the
// search tests.
func buildSearchTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"),
		[]byte("needle one\nplain line\nNeedle two\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "data.log"),
		[]byte("no hits here\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"),
		[]byte{0x00, 0xFF, 0x00, 0x01}, 0o644))

	return root
}

func TestSearchCommand_Success_Names(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildSearchTree(t)

	out, err := executeCommand(t, NewSearchCommand(app), root, "--name", "*.txt")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "notes.txt"))
	assert.NotContains(t, out, "data.log")
	assert.Contains(t, out, "1 matches")
	assert.NotContains(t, out, "files scanned")
	assert.Equal(t, 0, app.exitCode)
}

func TestSearchCommand_Success_Content(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildSearchTree(t)

	out, err := executeCommand(t, NewSearchCommand(app), root, "--content", "needle")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "notes.txt")+" (2 lines)")
	assert.Contains(t, out, "1: needle one")
	assert.Contains(t, out, "3: Needle two")
	assert.Contains(t, out, "1 matches (2 files scanned, 1 binary skipped)")
	assert.Equal(t, 0, app.exitCode)
}

func TestSearchCommand_Success_ContentCaseSensitive(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildSearchTree(t)

	out, err := executeCommand(t, NewSearchCommand(app), root,
		"--content", "needle", "--case-sensitive")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "notes.txt")+" (1 lines)")
	assert.Contains(t, out, "1: needle one")
	assert.NotContains(t, out, "Needle two")
}

func TestSearchCommand_Success_ContentRegex(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildSearchTree(t)

	out, err := executeCommand(t, NewSearchCommand(app), root,
		"--content", "ne{2}dle (one|two)", "--regex")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "notes.txt")+" (2 lines)")
}

func TestSearchCommand_Error_BadRegex(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	_, err := executeCommand(t, NewSearchCommand(app), t.TempDir(),
		"--content", "[", "--regex")
	require.ErrorContains(t, err, "search failed")
	require.ErrorContains(t, err, "invalid search criteria")
}

func TestSearchCommand_Error_MissingRoot(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	_, err := executeCommand(t, NewSearchCommand(app), filepath.Join(t.TempDir(), "absent"))
	require.ErrorContains(t, err, "search failed")
}
