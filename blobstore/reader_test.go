package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, data []byte) Blob {
	t.Helper()
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "blob", data))
	b, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestNewReader(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100)
	b := openMemory(t, data)

	require.NoError(t, iotest.TestReader(NewReader(context.Background(), b), data))

	got, err := io.ReadAll(iotest.OneByteReader(NewReader(context.Background(), b)))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFetch(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefg"), 1000)
	b := openMemory(t, data)

	tests := []struct {
		name string
		opts FetchOptions
	}{
		{"Default", FetchOptions{}},
		{"Sequential", FetchOptions{ChunkSize: 100}},
		{"Concurrent", FetchOptions{ChunkSize: 333, Concurrency: 4}},
		{"ChunkLargerThanBlob", FetchOptions{ChunkSize: 1 << 20, Concurrency: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fetch(context.Background(), b, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		got, err := Fetch(context.Background(), openMemory(t, nil), FetchOptions{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

type failingBlob struct {
	Blob
	err error
}

func (b failingBlob) ReadRange(context.Context, int64, int64) (io.ReadCloser, error) {
	return nil, b.err
}

func TestFetch_Error(t *testing.T) {
	boom := errors.New("boom")
	b := failingBlob{Blob: openMemory(t, []byte("0123456789")), err: boom}

	_, err := Fetch(context.Background(), b, FetchOptions{ChunkSize: 2, Concurrency: 3})
	assert.ErrorIs(t, err, boom)
}
