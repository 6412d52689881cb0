package fastconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// newProject 创建 outer/project/a/b/c 目录结构，project 下含 .git。
func newProject(t *testing.T) (outer, root, leaf string) {
	t.Helper()

	outer = t.TempDir()
	root = filepath.Join(outer, "project")
	leaf = filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(leaf, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, root, "config.toml", "")
	writeFile(t, outer, "outer.toml", "")

	return outer, root, leaf
}

func TestSearch(t *testing.T) {
	outer, root, leaf := newProject(t)

	t.Run("found upwards", func(t *testing.T) {
		got, ok := fastconfig.Search("config.toml", fastconfig.SearchFrom(leaf))
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "config.toml"), got)
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := fastconfig.Search("missing.toml", fastconfig.SearchFrom(leaf))
		assert.False(t, ok)
	})

	t.Run("stops at project root", func(t *testing.T) {
		_, ok := fastconfig.Search("outer.toml", fastconfig.SearchFrom(leaf))
		assert.False(t, ok)

		got, ok := fastconfig.Search("outer.toml", fastconfig.SearchFrom(leaf), fastconfig.WithoutRootStop())
		require.True(t, ok)
		assert.Equal(t, filepath.Join(outer, "outer.toml"), got)
	})

	t.Run("depth limit", func(t *testing.T) {
		_, ok := fastconfig.Search("config.toml", fastconfig.SearchFrom(leaf), fastconfig.SearchDepth(2))
		assert.False(t, ok)

		_, ok = fastconfig.Search("config.toml", fastconfig.SearchFrom(leaf), fastconfig.SearchDepth(4))
		assert.True(t, ok)
	})

	t.Run("directory target", func(t *testing.T) {
		got, ok := fastconfig.Search(".git/", fastconfig.SearchFrom(leaf))
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, ".git"), got)

		_, ok = fastconfig.Search("config.toml/", fastconfig.SearchFrom(leaf))
		assert.False(t, ok)
	})

	t.Run("start from file", func(t *testing.T) {
		got, ok := fastconfig.Search("config.toml", fastconfig.SearchFrom(filepath.Join(root, "config.toml")))
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "config.toml"), got)
	})

	t.Run("working directory", func(t *testing.T) {
		t.Chdir(leaf)

		got, ok := fastconfig.Search("config.toml")
		require.True(t, ok)
		assert.Equal(t, "config.toml", filepath.Base(got))
	})
}

func TestIsProjectRoot(t *testing.T) {
	_, root, leaf := newProject(t)

	assert.True(t, fastconfig.IsProjectRoot(root))
	assert.True(t, fastconfig.IsProjectRoot(filepath.Join(root, "config.toml")))
	assert.False(t, fastconfig.IsProjectRoot(leaf))
	assert.False(t, fastconfig.IsProjectRoot(filepath.Join(root, "nothing.txt")))
}

func TestFindProjectRoot(t *testing.T) {
	_, root, leaf := newProject(t)

	got, ok := fastconfig.FindProjectRoot(leaf)
	require.True(t, ok)
	assert.Equal(t, root, got)

	hgRoot := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(hgRoot, ".hg"), 0o755))
	got, ok = fastconfig.FindProjectRoot(hgRoot)
	require.True(t, ok)
	assert.Equal(t, hgRoot, got)
}
