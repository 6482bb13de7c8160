package ascii

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/celltable/internal/compress"
	"github.com/hupe1980/celltable/table"
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Comment is the marker prefixed to header and comment lines.
	Comment string

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultWriterOptions holds the default writer options.
var DefaultWriterOptions = WriterOptions{
	Comment: "#",
}

// Writer writes tables as aligned whitespace-separated text, preceded by a
// comment header declaring name, type, unit and description of every column.
// The output can be read back by Reader.
type Writer struct {
	opts   WriterOptions
	w      *bufio.Writer
	closer io.Closer
	info   *table.ColumnInfo
}

// NewWriter returns a Writer on w. The caller keeps ownership of w.
func NewWriter(w io.Writer, optFns ...func(o *WriterOptions)) *Writer {
	opts := DefaultWriterOptions
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

// Create creates the file at path. The output is compressed if the name ends
// in .gz, .zst or .lz4. The file is closed by Close.
func Create(path string, optFns ...func(o *WriterOptions)) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cw, err := compress.NewWriter(f, compress.FromName(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := NewWriter(cw, optFns...)
	w.closer = closers{cw, f}
	return w, nil
}

// Close flushes buffered output and releases the file if the Writer was
// created by Create.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// AddComment writes a comment line. Comments must precede the first table.
func (w *Writer) AddComment(text string) error {
	if w.info != nil {
		return fmt.Errorf("%w: comment after data", ErrState)
	}
	if _, err := fmt.Fprintf(w.w, "%s %s\n", w.opts.Comment, text); err != nil {
		return err
	}
	return w.w.Flush()
}

// Write appends the rows of t. The first call writes the column header as
// well; later tables must have an equal column layout.
func (w *Writer) Write(t *table.Table) error {
	info := t.ColumnInfo()
	first := w.info == nil
	if !first && !w.info.Equal(info) {
		return table.ErrColumnInfoMismatch
	}

	texts, widths, err := cellTexts(t)
	if err != nil {
		return err
	}
	if err := w.checkMarker(info, texts, first); err != nil {
		return err
	}

	if first {
		if err := w.writeHeader(info, widths); err != nil {
			return err
		}
		w.info = info
	}

	for _, row := range texts {
		for i, s := range row {
			if _, err := fmt.Fprintf(w.w, "%*s", widths[i], s); err != nil {
				return err
			}
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	w.opts.Logger.Debug("wrote table", "rows", t.Len(), "columns", info.Size())
	return w.w.Flush()
}

// checkMarker rejects text that would be cut off at the comment marker when
// read back.
func (w *Writer) checkMarker(info *table.ColumnInfo, texts [][]string, header bool) error {
	marker := w.opts.Comment
	if header {
		for i, d := range info.Descriptions() {
			for _, s := range []string{d.Name, d.Unit, d.Description} {
				if strings.Contains(s, marker) {
					return fmt.Errorf("%w: column %d (%q): %q", ErrCommentMarker, i, d.Name, s)
				}
			}
		}
	}
	for r, line := range texts {
		for i, s := range line {
			if strings.Contains(s, marker) {
				return fmt.Errorf("%w: row %d, column %d: %q", ErrCommentMarker, r, i, s)
			}
		}
	}
	return nil
}

func (w *Writer) writeHeader(info *table.ColumnInfo, widths []int) error {
	descs := info.Descriptions()
	keywords := make([]string, len(descs))
	for i, d := range descs {
		kw, err := KindToKeyword(d.Type)
		if err != nil {
			return fmt.Errorf("column %q: %w", d.Name, err)
		}
		keywords[i] = kw
	}

	for i, d := range descs {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s %s %s", w.opts.Comment, declPrefix, d.Name, keywords[i])
		if d.Unit != "" {
			fmt.Fprintf(&b, " (%s)", d.Unit)
		}
		if d.Description != "" {
			fmt.Fprintf(&b, " - %s", d.Description)
		}
		b.WriteByte('\n')
		if _, err := w.w.WriteString(b.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w.w, "%s\n", w.opts.Comment); err != nil {
		return err
	}

	if _, err := w.w.WriteString(w.opts.Comment); err != nil {
		return err
	}
	for i, d := range descs {
		width := widths[i]
		if i == 0 {
			width -= len(w.opts.Comment)
		}
		width = max(width, len(d.Name)+1)
		if _, err := fmt.Fprintf(w.w, "%*s", width, d.Name); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// ColumnWidths returns the width of every column of t: one more than the
// longest of its name and its cells' text forms.
func ColumnWidths(t *table.Table) ([]int, error) {
	_, widths, err := cellTexts(t)
	return widths, err
}

// cellTexts renders every cell of t and measures the column widths.
func cellTexts(t *table.Table) ([][]string, []int, error) {
	info := t.ColumnInfo()
	widths := make([]int, info.Size())
	for i, name := range info.Names() {
		widths[i] = len(name) + 1
	}

	texts := make([][]string, 0, t.Len())
	for r, row := range t.Rows() {
		line := make([]string, row.Len())
		for i, c := range row.All() {
			if c.Kind().IsVector() && c.VectorLen() == 0 {
				return nil, nil, fmt.Errorf("%w: row %d, column %d", ErrEmptyVector, r, i)
			}
			line[i] = c.String()
			widths[i] = max(widths[i], len(line[i])+1)
		}
		texts = append(texts, line)
	}
	return texts, widths, nil
}
