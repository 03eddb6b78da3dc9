package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsModuleFile(t *testing.T) {
	assert.True(t, IsModuleFile("a/b.yaml"))
	assert.True(t, IsModuleFile("b.yml"))
	assert.False(t, IsModuleFile("b.json"))
	assert.False(t, IsModuleFile("yaml"))
}

func TestExtractModuleName(t *testing.T) {
	assert.Equal(t, "geometry", ExtractModuleName("testdata/geometry.yaml"))
	assert.Equal(t, "x", ExtractModuleName("x.yml"))
	assert.Equal(t, "notes.txt", ExtractModuleName("/tmp/notes.txt"))
}

func TestExpandModulePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))
	single := filepath.Join(dir, "notes.txt")

	files, err := ExpandModulePaths([]string{single, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, files)
}

func TestExpandModulePaths_Errors(t *testing.T) {
	_, err := ExpandModulePaths([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = ExpandModulePaths([]string{t.TempDir()})
	assert.ErrorContains(t, err, "no module files")
}
