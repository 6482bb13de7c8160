package celltable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/celltable/ascii"
	"github.com/hupe1980/celltable/blobstore"
	"github.com/hupe1980/celltable/codec"
	"github.com/hupe1980/celltable/fits"
	"github.com/hupe1980/celltable/internal/compress"
	"github.com/hupe1980/celltable/table"
)

// ReadTable reads the table stored under name. Compressed files are detected
// by their content. Only text and JSON files can be read.
func ReadTable(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*table.Table, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	format := opts.resolve(name)

	start := time.Now()
	t, err := readTable(ctx, store, name, format, &opts)
	rows := 0
	if err == nil {
		rows = t.Len()
	}
	opts.metricsCollector.RecordRead(format, rows, time.Since(start), err)
	opts.logger.LogRead(ctx, name, format, rows, err)
	return t, err
}

func readTable(ctx context.Context, store blobstore.BlobStore, name string, format Format, opts *options) (*table.Table, error) {
	if format == FormatFITS {
		return nil, fmt.Errorf("%w: reading %s files", ErrUnsupportedFormat, format)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	var src io.Reader
	if opts.fetchConcurrency > 0 {
		data, err := blobstore.Fetch(ctx, blob, blobstore.FetchOptions{
			ChunkSize:   opts.fetchChunkSize,
			Concurrency: opts.fetchConcurrency,
		})
		if err != nil {
			return nil, err
		}
		src = bytes.NewReader(data)
	} else {
		src = blobstore.NewReader(ctx, blob)
	}

	rc, c, err := compress.NewAutoReader(src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	opts.logger.DebugContext(ctx, "opened table file", "name", name, "size", blob.Size(), "compression", c.String())

	switch format {
	case FormatJSON:
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		return codec.DecodeTable(opts.codec, data)
	case FormatText:
		return readText(rc, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func readText(r io.Reader, opts *options) (*table.Table, error) {
	tr := ascii.NewReader(r, func(o *ascii.Options) {
		o.Comment = opts.comment
		o.Logger = opts.logger.Logger
	})
	defer tr.Close()

	if len(opts.columnNames) > 0 {
		if err := tr.FixColumnNames(opts.columnNames...); err != nil {
			return nil, err
		}
	}
	if len(opts.columnTypes) > 0 {
		if err := tr.FixColumnTypes(opts.columnTypes...); err != nil {
			return nil, err
		}
	}

	t, err := tr.ReadAll()
	if errors.Is(err, ascii.ErrNoDataLines) {
		// a table written without rows keeps its header
		info, err := tr.DeclaredColumnInfo()
		if err != nil {
			return nil, err
		}
		return table.NewTable(info)
	}
	return t, err
}

// WriteTable stores t under name. The file is compressed if name ends in
// .gz, .zst or .lz4. Nothing is published if encoding fails.
func WriteTable(ctx context.Context, store blobstore.BlobStore, name string, t *table.Table, optFns ...Option) error {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	format := opts.resolve(name)

	start := time.Now()
	err := writeTable(ctx, store, name, t, format, &opts)
	opts.metricsCollector.RecordWrite(format, t.Len(), time.Since(start), err)
	opts.logger.LogWrite(ctx, name, format, t.Len(), err)
	return err
}

func writeTable(ctx context.Context, store blobstore.BlobStore, name string, t *table.Table, format Format, opts *options) (err error) {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	var cw io.WriteCloser
	defer func() {
		if err != nil {
			if cw != nil {
				_ = cw.Close()
			}
			discard(ctx, store, name, blob)
		}
	}()

	if cw, err = newCompressor(blob, compress.FromName(name)); err != nil {
		return err
	}

	switch format {
	case FormatText:
		err = writeText(cw, t, opts)
	case FormatFITS:
		err = writeFITS(cw, baseName(name), t, opts)
	case FormatJSON:
		var data []byte
		if data, err = codec.EncodeTable(opts.codec, t); err == nil {
			_, err = cw.Write(data)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return err
	}
	err = cw.Close()
	cw = nil
	if err != nil {
		return err
	}
	return blob.Close()
}

// newCompressor is replaced in tests.
var newCompressor = compress.NewWriter

func writeText(w io.Writer, t *table.Table, opts *options) error {
	tw := ascii.NewWriter(w, func(o *ascii.WriterOptions) {
		o.Comment = opts.comment
		o.Logger = opts.logger.Logger
	})
	for _, c := range opts.comments {
		if err := tw.AddComment(c); err != nil {
			return err
		}
	}
	if err := tw.Write(t); err != nil {
		return err
	}
	return tw.Close()
}

func writeFITS(w io.Writer, defaultName string, t *table.Table, opts *options) error {
	fw := fits.NewWriter(w, func(o *fits.Options) {
		o.Format = opts.fitsFormat
		o.Logger = opts.logger.Logger
	})
	for _, c := range opts.comments {
		if err := fw.AddComment(c); err != nil {
			return err
		}
	}
	hdu := opts.hduName
	if hdu == "" {
		hdu = defaultName
	}
	if err := fw.WriteTable(hdu, t); err != nil {
		return err
	}
	return fw.Close()
}

// discard drops a failed write. Blobs that cannot abort are closed and
// deleted.
func discard(ctx context.Context, store blobstore.BlobStore, name string, blob blobstore.WritableBlob) {
	if a, ok := blob.(blobstore.Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = blob.Close()
	_ = store.Delete(ctx, name)
}

func (o *options) resolve(name string) Format {
	if o.format != FormatAuto {
		return o.format
	}
	return FormatOf(name)
}

// baseName returns name without directory, compression suffix or extension.
func baseName(name string) string {
	base := path.Base(compress.TrimName(name))
	return strings.TrimSuffix(base, path.Ext(base))
}
