package blobstore

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

var errNegativeOffset = errors.New("blobstore: negative offset or length")

// DefaultChunkSize is the chunk size used by Fetch when none is given.
const DefaultChunkSize = 8 << 20

// NewReader returns a sequential reader over the whole blob. It does not
// close the blob.
func NewReader(ctx context.Context, b Blob) io.Reader {
	return &blobReader{ctx: ctx, b: b}
}

type blobReader struct {
	ctx context.Context
	b   Blob
	off int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.off >= r.b.Size() {
		return 0, io.EOF
	}
	if rest := r.b.Size() - r.off; int64(len(p)) > rest {
		p = p[:rest]
	}
	n, err := r.b.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

// FetchOptions controls Fetch.
type FetchOptions struct {
	// ChunkSize is the size of a single range read. Zero selects DefaultChunkSize.
	ChunkSize int64
	// Concurrency bounds the number of range reads in flight. Values below
	// one read sequentially.
	Concurrency int
}

// Fetch reads the whole blob into memory using concurrent range reads.
func Fetch(ctx context.Context, b Blob, opts FetchOptions) ([]byte, error) {
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	size := b.Size()
	buf := make([]byte, size)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for off := int64(0); off < size; off += chunk {
		part := buf[off:min(off+chunk, size)]
		g.Go(func() error {
			rc, err := b.ReadRange(ctx, off, int64(len(part)))
			if err != nil {
				return err
			}
			defer rc.Close()
			_, err = io.ReadFull(rc, part)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
