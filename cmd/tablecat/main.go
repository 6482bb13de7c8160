// Command tablecat converts and inspects table files.
//
//	tablecat [flags] SRC [DST]
//
// SRC and DST are local paths or object URLs (s3://bucket/key,
// minio://host:port/bucket/key). Without DST the table is printed as text.
// With -info the structure of SRC is printed instead; FITS files are only
// inspected, never converted.
//
// MinIO credentials are taken from MINIO_ACCESS_KEY and MINIO_SECRET_KEY.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hupe1980/celltable"
	"github.com/hupe1980/celltable/ascii"
	"github.com/hupe1980/celltable/blobstore"
	"github.com/hupe1980/celltable/blobstore/minio"
	"github.com/hupe1980/celltable/blobstore/s3"
	"github.com/hupe1980/celltable/fits"
	"github.com/hupe1980/celltable/table"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "tablecat:", err)
		}
		stop()
		os.Exit(1)
	}
}

type config struct {
	info        bool
	rows        string
	comment     string
	fitsFormat  string
	hdu         string
	concurrency int
	verbose     bool
	jsonLogs    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("tablecat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.info, "info", false, "print the structure of SRC instead of its rows")
	fs.StringVar(&cfg.rows, "rows", "", "1-based rows to keep, e.g. 1-10,15,20-")
	fs.StringVar(&cfg.comment, "comment", "#", "comment marker of text files")
	fs.StringVar(&cfg.fitsFormat, "fits-format", "binary", "FITS table layout: binary or ascii")
	fs.StringVar(&cfg.hdu, "hdu", "", "EXTNAME of written FITS tables (default: file name)")
	fs.IntVar(&cfg.concurrency, "concurrency", 0, "concurrent range reads when fetching SRC (0 streams)")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug messages")
	fs.BoolVar(&cfg.jsonLogs, "json-logs", false, "log as JSON")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: tablecat [flags] SRC [DST]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected SRC and optional DST")
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	if cfg.jsonLogs {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	}
	logger := celltable.NewLogger(handler)

	format, err := fits.ParseFormat(cfg.fitsFormat)
	if err != nil {
		return err
	}
	opts := []celltable.Option{
		celltable.WithLogger(logger),
		celltable.WithComment(cfg.comment),
		celltable.WithFITSFormat(format),
		celltable.WithHDUName(cfg.hdu),
		celltable.WithFetchConcurrency(cfg.concurrency, 0),
	}

	srcStore, src, err := openStore(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	if cfg.info && celltable.FormatOf(src) == celltable.FormatFITS {
		return printHDUs(ctx, stdout, srcStore, src)
	}

	t, err := celltable.ReadTable(ctx, srcStore, src, opts...)
	if err != nil {
		return err
	}
	if cfg.rows != "" {
		ids, err := table.ParseRowRanges(cfg.rows, t.Len())
		if err != nil {
			return err
		}
		if t, err = t.Select(ids); err != nil {
			return err
		}
	}

	if cfg.info {
		return printInfo(stdout, t)
	}
	if fs.NArg() == 1 {
		w := ascii.NewWriter(stdout, func(o *ascii.WriterOptions) {
			o.Comment = cfg.comment
		})
		if err := w.Write(t); err != nil {
			return err
		}
		return w.Close()
	}

	dstStore, dst, err := openStore(ctx, fs.Arg(1))
	if err != nil {
		return err
	}
	return celltable.WriteTable(ctx, dstStore, dst, t, opts...)
}

// openStore resolves a path or object URL to a store and a blob name.
func openStore(ctx context.Context, location string) (blobstore.BlobStore, string, error) {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, "", err
		}
		return blobstore.NewLocalStore(filepath.Dir(abs)), filepath.Base(abs), nil
	}

	switch scheme {
	case "s3":
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || key == "" {
			return nil, "", fmt.Errorf("missing key in %q", location)
		}
		store, err := s3.New(ctx, bucket)
		if err != nil {
			return nil, "", err
		}
		return store, key, nil
	case "minio":
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) != 3 || parts[2] == "" {
			return nil, "", fmt.Errorf("expected minio://host/bucket/key, got %q", location)
		}
		client, err := minio.Dial(parts[0], os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), false)
		if err != nil {
			return nil, "", err
		}
		return minio.NewStore(client, parts[1], ""), parts[2], nil
	default:
		return nil, "", fmt.Errorf("unsupported scheme %q", scheme)
	}
}

func printInfo(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintf(w, "rows: %d\n", t.Len()); err != nil {
		return err
	}
	for i, d := range t.ColumnInfo().Descriptions() {
		line := fmt.Sprintf("%d: %s %s", i+1, d.Name, d.Type)
		if d.Unit != "" {
			line += " (" + d.Unit + ")"
		}
		if d.Description != "" {
			line += " - " + d.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printHDUs(ctx context.Context, w io.Writer, store blobstore.BlobStore, name string) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	hdus, err := fits.ReadHDUs(blobstore.NewReader(ctx, blob))
	if err != nil {
		return err
	}
	for i, h := range hdus {
		rows, _ := h.Header.Int("NAXIS2")
		cols, _ := h.Header.Int("TFIELDS")
		xt, _ := h.Header.String("XTENSION")
		if _, err := fmt.Fprintf(w, "%d: %s %s rows=%d columns=%d\n", i, h.Name(), xt, rows, cols); err != nil {
			return err
		}
		for c := int64(1); c <= cols; c++ {
			ttype, _ := h.Header.String(fmt.Sprintf("TTYPE%d", c))
			tform, _ := h.Header.String(fmt.Sprintf("TFORM%d", c))
			if _, err := fmt.Fprintf(w, "  %s %s\n", ttype, tform); err != nil {
				return err
			}
		}
	}
	return nil
}
