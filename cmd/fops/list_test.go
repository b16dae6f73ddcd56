package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildListTree lays out a small tree with a hidden branch for the listing
// tests.
func buildListTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.log"), []byte("brief!"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden", "c.txt"), []byte("shh"), 0o644))

	return root
}

func TestListCommand_Success(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildListTree(t)

	out, err := executeCommand(t, NewListCommand(app), root)
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "a.txt"))
	assert.Contains(t, out, filepath.Join(root, "sub"))
	assert.Contains(t, out, filepath.Join(root, "sub", "b.log"))
	assert.NotContains(t, out, ".hidden")

	assert.Contains(t, out, "3 elements, 11 B")
	assert.Equal(t, 0, app.exitCode)
}

func TestListCommand_Success_Hidden(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildListTree(t)

	out, err := executeCommand(t, NewListCommand(app), root, "--hidden")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, ".hidden", "c.txt"))
	assert.Contains(t, out, "5 elements")
}

func TestListCommand_Success_ExtFilter(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildListTree(t)

	out, err := executeCommand(t, NewListCommand(app), root, "--ext", "txt")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "a.txt"))
	assert.NotContains(t, out, "b.log")
	assert.Contains(t, out, "1 elements, 5 B")
}

func TestListCommand_Success_NonRecursive(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	root := buildListTree(t)

	out, err := executeCommand(t, NewListCommand(app), root, "--recursive=false")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(root, "a.txt"))
	assert.NotContains(t, out, "b.log")
	assert.Contains(t, out, "2 elements")
}

func TestListCommand_Error_MissingRoot(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	_, err := executeCommand(t, NewListCommand(app), filepath.Join(t.TempDir(), "absent"))
	require.ErrorContains(t, err, "traversal failed")
}

func TestListCommand_Error_BadPattern(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	_, err := executeCommand(t, NewListCommand(app), t.TempDir(), "--name", "[")
	require.ErrorContains(t, err, "invalid filter")
}
