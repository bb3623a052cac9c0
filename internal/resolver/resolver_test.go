package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

func writeFile(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("export {}\n"), 0o644))
	return path
}

func TestResolveExactPath(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "util.js")

	r := NewFSResolver()
	resolved, err := r.Resolve(dir, "./util.js")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier(target), resolved)
}

func TestResolveAddsExtension(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "util.mjs")

	r := NewFSResolver()
	resolved, err := r.Resolve(dir, "./util")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier(target), resolved)
}

func TestResolveExtensionOrder(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, dir, "util.js")
	writeFile(t, dir, "util.css")

	r := NewFSResolver()
	resolved, err := r.Resolve(dir, "./util")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier(js), resolved)
}

func TestResolveDirectoryIndex(t *testing.T) {
	dir := t.TempDir()
	index := writeFile(t, dir, filepath.Join("lib", "index.js"))

	r := NewFSResolver()
	resolved, err := r.Resolve(dir, "./lib")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier(index), resolved)
}

func TestResolveParentRelative(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "shared.js")
	nested := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	r := NewFSResolver()
	resolved, err := r.Resolve(nested, "../shared.js")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier(target), resolved)
}

func TestResolveBareSpecifierIsExternal(t *testing.T) {
	r := NewFSResolver()
	resolved, err := r.Resolve(t.TempDir(), "lodash")
	require.NoError(t, err)
	assert.Equal(t, ast.ModuleIdentifier("external:lodash"), resolved)
}

func TestResolveMissingFileFails(t *testing.T) {
	r := NewFSResolver()
	_, err := r.Resolve(t.TempDir(), "./missing")
	assert.Error(t, err)
}

func TestResolveEmptyRequestFails(t *testing.T) {
	r := NewFSResolver()
	_, err := r.Resolve(t.TempDir(), "")
	assert.Error(t, err)
}
