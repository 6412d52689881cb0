package fastconfig_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

func TestHolder_Reload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.toml", "[section]\nint = 1\n")

	h, err := fastconfig.NewHolder(basicSchema, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	assert.True(t, filepath.IsAbs(h.Path()))
	assert.Equal(t, 1, h.Get().C)

	var notified, calls atomic.Int64
	h.OnChange(func(cfg *BasicTypes) { notified.Store(int64(cfg.C)) })
	h.OnChange(func(*BasicTypes) { calls.Add(1) })

	// 失败时保留旧配置
	require.NoError(t, os.WriteFile(path, []byte("[section\n"), 0o600))
	require.Error(t, h.Reload())
	assert.Equal(t, 1, h.Get().C)
	assert.Zero(t, notified.Load())

	old := h.Get()
	require.NoError(t, os.WriteFile(path, []byte("[section]\nint = 2\n"), 0o600))
	require.NoError(t, h.Reload())
	assert.Equal(t, 2, h.Get().C)
	assert.Equal(t, int64(2), notified.Load())
	assert.Equal(t, int64(1), calls.Load())
	// 整体替换，旧实例不受影响
	assert.Equal(t, 1, old.C)
}

func TestHolder_MissingFile(t *testing.T) {
	_, err := fastconfig.NewHolder(basicSchema, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHolder_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.toml", "[section]\nint = 1\n")

	h, err := fastconfig.NewHolder(basicSchema, path)
	require.NoError(t, err)
	require.NoError(t, h.Watch())
	t.Cleanup(func() { _ = h.Close() })

	// 同目录其他文件的变化被忽略
	writeFile(t, dir, "other.toml", "[section]\nint = 50\n")

	require.NoError(t, os.WriteFile(path, []byte("[section]\nint = 100\n"), 0o600))
	require.Eventually(t, func() bool { return h.Get().C == 100 }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}
