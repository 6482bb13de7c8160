package fits

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/astrogo/fitsio"

	"github.com/hupe1980/celltable/table"
)

// Format selects the table extension type written by a Writer.
type Format uint8

const (
	// FormatBinary writes BINTABLE extensions.
	FormatBinary Format = iota
	// FormatASCII writes TABLE extensions.
	FormatASCII
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatASCII:
		return "ascii"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat parses "binary" or "ascii".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "binary", "BINARY", "bintable", "BINTABLE":
		return FormatBinary, nil
	case "ascii", "ASCII", "table", "TABLE":
		return FormatASCII, nil
	}
	return 0, fmt.Errorf("fits: unknown format %q", s)
}

// Options configures a Writer.
type Options struct {
	Format Format

	// Logger receives warnings about truncated header values. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions holds the default writer options.
var DefaultOptions = Options{
	Format: FormatBinary,
}

// Writer writes tables as FITS table extensions, one HDU per table. The
// primary HDU is written before the first table.
type Writer struct {
	opts     Options
	w        *bufio.Writer
	closer   io.Closer
	file     *fitsio.File
	closed   bool
	comments []string
}

// NewWriter returns a Writer on w. The caller keeps ownership of w.
func NewWriter(w io.Writer, optFns ...func(o *Options)) *Writer {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{
		opts: opts,
		w:    bufio.NewWriter(w),
	}
}

// Create creates the file at path. The file is closed by Close.
func Create(path string, optFns ...func(o *Options)) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f, optFns...)
	w.closer = f
	return w, nil
}

// Format returns the format of the written tables.
func (w *Writer) Format() Format { return w.opts.Format }

// AddComment queues a COMMENT card for the header of the next table.
func (w *Writer) AddComment(text string) error {
	if w.closed {
		return ErrState
	}
	w.comments = append(w.comments, text)
	return nil
}

// WriteTable writes t as a new HDU named name. Nothing is written for a
// table whose columns cannot be represented in the selected format.
func (w *Writer) WriteTable(name string, t *table.Table) error {
	if w.closed {
		return ErrState
	}

	cols, err := planColumns(t, w.opts.Format)
	if err != nil {
		return err
	}

	if err := w.start(); err != nil {
		return err
	}

	fcols := make([]fitsio.Column, len(cols))
	for i := range cols {
		fcols[i] = cols[i].fitsColumn(w.opts.Logger, i+1)
	}
	hduType := fitsio.BINARY_TBL
	if w.opts.Format == FormatASCII {
		hduType = fitsio.ASCII_TBL
	}

	tbl, err := fitsio.NewTable(fitValue(w.opts.Logger, "EXTNAME", name), fcols, hduType)
	if err != nil {
		return fmt.Errorf("fits: create table %q: %w", name, err)
	}
	defer tbl.Close()

	if err := tbl.Header().Append(w.extraCards(cols)...); err != nil {
		return err
	}
	w.comments = nil

	values := make([]any, len(cols))
	for _, r := range t.Rows() {
		for i, c := range r.All() {
			values[i] = cols[i].value(c)
		}
		if err := tbl.Write(values...); err != nil {
			return err
		}
	}

	if err := w.file.Write(tbl); err != nil {
		return err
	}

	w.opts.Logger.Debug("wrote fits table",
		"hdu", name,
		"format", w.opts.Format.String(),
		"rows", t.Len(),
		"columns", len(cols),
	)
	return w.w.Flush()
}

// start writes the primary HDU on first use.
func (w *Writer) start() error {
	if w.file != nil {
		return nil
	}
	f, err := fitsio.Create(w.w)
	if err != nil {
		return err
	}
	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}
	if err := f.Write(phdu); err != nil {
		return err
	}
	w.file = f
	return nil
}

// extraCards returns the column descriptions and the queued comments.
func (w *Writer) extraCards(cols []column) []fitsio.Card {
	var cards []fitsio.Card
	for i, c := range cols {
		if c.desc.Description == "" {
			continue
		}
		key := "TDESC" + strconv.Itoa(i+1)
		cards = append(cards, fitsio.Card{Name: key, Value: fitValue(w.opts.Logger, key, c.desc.Description)})
	}
	for _, text := range w.comments {
		for _, part := range splitComment(text) {
			cards = append(cards, fitsio.Card{Name: "COMMENT", Comment: part})
		}
	}
	return cards
}

// Close flushes buffered output and closes the file if the Writer was
// created by Create.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// a file without tables still needs its primary HDU
	err := w.start()
	if w.file != nil {
		if ferr := w.file.Close(); err == nil {
			err = ferr
		}
	}
	if ferr := w.w.Flush(); err == nil {
		err = ferr
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
