package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ifs "github.com/hupe1980/celltable/internal/fs"
)

func TestLocalStore_Faults(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	tests := []struct {
		name  string
		fault ifs.Fault
	}{
		{"Write", ifs.Fault{FailAfterBytes: 2, Err: boom}},
		{"Sync", ifs.Fault{FailAfterBytes: -1, FailOnSync: true, Err: boom}},
		{"Close", ifs.Fault{FailAfterBytes: -1, FailOnClose: true, Err: boom}},
		{"Rename", ifs.Fault{FailAfterBytes: -1, FailOnRename: true, Err: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			ffs := ifs.NewFaultyFS(nil)
			ffs.AddRule("stars.txt", tt.fault)
			store := &LocalStore{root: root, fs: ffs}

			err := store.Put(ctx, "cat/stars.txt", []byte("1 2 3\n"))
			require.ErrorIs(t, err, boom)

			_, err = store.Open(ctx, "cat/stars.txt")
			assert.ErrorIs(t, err, ErrNotFound)

			entries, err := os.ReadDir(filepath.Join(root, "cat"))
			require.NoError(t, err)
			assert.Empty(t, entries, "temporary file must be removed")

			// unrelated names are unaffected
			require.NoError(t, store.Put(ctx, "cat/other.txt", []byte("ok")))
			names, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"cat/other.txt"}, names)
		})
	}
}

func TestLocalStore_CreateExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	w1, err := store.Create(ctx, "a.txt")
	require.NoError(t, err)
	w2, err := store.Create(ctx, "a.txt")
	require.NoError(t, err)

	_, err = w1.Write([]byte("first"))
	require.NoError(t, err)
	_, err = w2.Write([]byte("second"))
	require.NoError(t, err)
	require.NoError(t, w1.Close())
	require.NoError(t, w2.Close())

	b, err := store.Open(ctx, "a.txt")
	require.NoError(t, err)
	defer b.Close()
	assert.EqualValues(t, len("second"), b.Size())
}
