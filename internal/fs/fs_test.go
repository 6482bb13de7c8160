package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "a.txt")
	f, err := lfs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name())
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	renamed := filepath.Join(dir, "b.txt")
	require.NoError(t, lfs.Rename(path, renamed))
	data, err := os.ReadFile(renamed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, lfs.Remove(renamed))
	_, err = os.Stat(renamed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()
	boom := errors.New("disk full")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 5, Err: boom})
	ffs.AddRule("nosync", Fault{FailAfterBytes: -1, FailOnSync: true, FailOnClose: true})
	ffs.AddRule("final", Fault{FailAfterBytes: -1, FailOnRename: true})

	t.Run("WriteLimit", func(t *testing.T) {
		f, err := ffs.OpenFile(filepath.Join(tmp, "limited.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		defer f.Close()

		n, err := f.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		n, err = f.Write([]byte("!"))
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, n)
	})

	t.Run("SyncAndClose", func(t *testing.T) {
		f, err := ffs.OpenFile(filepath.Join(tmp, "nosync.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.Write([]byte("data"))
		require.NoError(t, err)
		assert.ErrorIs(t, f.Sync(), ErrInjected)
		assert.ErrorIs(t, f.Close(), ErrInjected)
	})

	t.Run("Rename", func(t *testing.T) {
		src := filepath.Join(tmp, "src.txt")
		require.NoError(t, os.WriteFile(src, nil, 0o644))
		assert.ErrorIs(t, ffs.Rename(src, filepath.Join(tmp, "final.txt")), ErrInjected)
		require.NoError(t, ffs.Rename(src, filepath.Join(tmp, "other.txt")))
	})

	t.Run("Unmatched", func(t *testing.T) {
		f, err := ffs.OpenFile(filepath.Join(tmp, "plain.txt"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.Write(make([]byte, 100))
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		require.NoError(t, f.Close())
		require.NoError(t, ffs.MkdirAll(filepath.Join(tmp, "x", "y"), 0o755))
		require.NoError(t, ffs.Remove(filepath.Join(tmp, "plain.txt")))
	})
}
