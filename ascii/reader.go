package ascii

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/hupe1980/celltable/internal/compress"
	"github.com/hupe1980/celltable/table"
)

// Options configures a Reader.
type Options struct {
	// Comment is the marker starting a comment. Everything after it on a
	// line is ignored.
	Comment string

	// Logger receives warnings about inconsistent headers. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions holds the default reader options.
var DefaultOptions = Options{
	Comment: "#",
}

// Reader reads tables from a whitespace-separated text stream.
//
// The column layout is detected from the stream itself the first time it is
// needed: the column count from the first data line, names and types from
// the comment block preceding it. A Reader is not safe for concurrent use.
type Reader struct {
	opts    Options
	lines   *lineStream
	closer  io.Closer
	names   []string
	kinds   []table.Kind
	info    *table.ColumnInfo
	started bool
}

// NewReader returns a Reader on r. The caller keeps ownership of r.
func NewReader(r io.Reader, optFns ...func(o *Options)) *Reader {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{
		opts:  opts,
		lines: newLineStream(r),
	}
}

// Open opens the file at path for reading. Gzip, zstd and lz4 compressed
// files are decompressed transparently. The file is closed by Close.
func Open(path string, optFns ...func(o *Options)) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, _, err := compress.NewAutoReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r := NewReader(rc, optFns...)
	r.closer = closers{rc, f}
	return r, nil
}

// Close releases the underlying file if the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// SetComment changes the comment marker.
func (r *Reader) SetComment(marker string) error {
	if marker == "" {
		return ErrEmptyComment
	}
	if r.started {
		return fmt.Errorf("%w: comment marker", ErrState)
	}
	r.opts.Comment = marker
	return nil
}

// FixColumnNames overrides the detected column names.
func (r *Reader) FixColumnNames(names ...string) error {
	if r.started {
		return fmt.Errorf("%w: column names", ErrState)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
			return fmt.Errorf("%w: %q", ErrInvalidColumnName, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w %q", table.ErrDuplicateColumnName, name)
		}
		seen[name] = struct{}{}
	}
	if len(r.kinds) != 0 && len(r.kinds) != len(names) {
		return fmt.Errorf("%w: %d names for %d fixed types", ErrColumnCountMismatch, len(names), len(r.kinds))
	}
	r.names = slices.Clone(names)
	return nil
}

// FixColumnTypes overrides the detected column types.
func (r *Reader) FixColumnTypes(kinds ...table.Kind) error {
	if r.started {
		return fmt.Errorf("%w: column types", ErrState)
	}
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: %d", table.ErrInvalidKind, uint8(k))
		}
	}
	if len(r.names) != 0 && len(r.names) != len(kinds) {
		return fmt.Errorf("%w: %d types for %d fixed names", ErrColumnCountMismatch, len(kinds), len(r.names))
	}
	r.kinds = slices.Clone(kinds)
	return nil
}

// ColumnInfo returns the column layout of the stream, detecting it on the
// first call. No data line is consumed.
func (r *Reader) ColumnInfo() (*table.ColumnInfo, error) {
	if err := r.detect(); err != nil {
		return nil, err
	}
	return r.info, nil
}

// DeclaredColumnInfo returns ColumnInfo for streams with data lines. For a
// stream without any, the layout is taken from the comment header alone:
// the names line if it agrees with the Column: declarations, otherwise the
// declarations, overridden by fixed names and types. It fails with
// ErrNoDataLines if neither the header nor the fixed names or types declare
// a column.
func (r *Reader) DeclaredColumnInfo() (*table.ColumnInfo, error) {
	err := r.detect()
	if err == nil {
		return r.info, nil
	}
	if !errors.Is(err, ErrNoDataLines) {
		return nil, err
	}

	h, err := scanHeader(r.lines, r.opts.Comment)
	if err != nil {
		return nil, err
	}
	detected := h.declaredNames()

	n := len(detected)
	switch {
	case len(r.names) != 0:
		n = len(r.names)
	case len(r.kinds) != 0:
		n = len(r.kinds)
	}
	if n == 0 {
		return nil, ErrNoDataLines
	}
	if len(r.kinds) != 0 && len(r.kinds) != n {
		return nil, fmt.Errorf("%w: %d fixed types for %d columns", ErrColumnCountMismatch, len(r.kinds), n)
	}
	if len(detected) != 0 && len(detected) != n {
		return nil, fmt.Errorf("%w: %d fixed columns for %d declared", ErrColumnCountMismatch, n, len(detected))
	}
	for i := len(detected) + 1; i <= n; i++ {
		detected = append(detected, "col"+strconv.Itoa(i))
	}

	info, err := table.NewColumnInfo(r.describe(h, detected)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeaderDetection, err)
	}
	r.info = info
	return info, nil
}

// describe builds the column descriptions for the detected names, applying
// the fixed names and types.
func (r *Reader) describe(h *header, detected []string) []table.ColumnDescription {
	descs := make([]table.ColumnDescription, len(detected))
	for i, name := range detected {
		decl, ok := h.byName[name]
		if !ok {
			decl = columnDecl{kind: table.KindString}
		}
		descs[i] = table.ColumnDescription{
			Name:        name,
			Type:        decl.kind,
			Unit:        decl.unit,
			Description: decl.description,
		}
		if len(r.names) != 0 {
			descs[i].Name = r.names[i]
		}
		if len(r.kinds) != 0 {
			descs[i].Type = r.kinds[i]
		}
	}
	return descs
}

func (r *Reader) detect() error {
	if r.info != nil {
		return nil
	}
	r.started = true

	n, err := countColumns(r.lines, r.opts.Comment)
	if err != nil {
		return err
	}
	if len(r.names) != 0 && len(r.names) != n {
		return fmt.Errorf("%w: %d fixed names for %d columns", ErrColumnCountMismatch, len(r.names), n)
	}
	if len(r.kinds) != 0 && len(r.kinds) != n {
		return fmt.Errorf("%w: %d fixed types for %d columns", ErrColumnCountMismatch, len(r.kinds), n)
	}

	h, err := scanHeader(r.lines, r.opts.Comment)
	if err != nil {
		return err
	}
	detected, err := h.columnNames(n, r.opts.Logger)
	if err != nil {
		return err
	}

	info, err := table.NewColumnInfo(r.describe(h, detected)...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHeaderDetection, err)
	}
	r.info = info
	return nil
}

// Read reads up to rows rows. A negative count reads all remaining rows and
// zero returns an empty table. It fails with ErrNoRowsLeft if rows were
// requested but none is left.
func (r *Reader) Read(rows int) (*table.Table, error) {
	if err := r.detect(); err != nil {
		return nil, err
	}
	t, err := table.NewTable(r.info)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return t, nil
	}

	for left := rows; left != 0; {
		data, ok, err := r.nextData()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		row, err := r.parseRow(data)
		if err != nil {
			return nil, err
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
		left--
	}

	if t.Len() == 0 {
		return nil, ErrNoRowsLeft
	}
	return t, nil
}

// ReadAll reads all remaining rows.
func (r *Reader) ReadAll() (*table.Table, error) {
	return r.Read(-1)
}

// Skip advances past up to rows data lines without converting them. A
// negative count skips to the end of the stream.
func (r *Reader) Skip(rows int) error {
	if err := r.detect(); err != nil {
		return err
	}
	for left := rows; left != 0; left-- {
		_, ok, err := r.nextData()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}

// HasMoreRows reports whether a data line is left. Nothing is consumed and
// the header is not detected, so the configuration can still be changed.
func (r *Reader) HasMoreRows() (bool, error) {
	defer r.lines.mark()()
	_, ok, err := r.nextData()
	return ok, err
}

// RowsLeft counts the remaining data lines. Like HasMoreRows it neither
// consumes lines nor detects the header.
func (r *Reader) RowsLeft() (int, error) {
	defer r.lines.mark()()
	n := 0
	for {
		_, ok, err := r.nextData()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// nextData returns the next non-empty line with its comment stripped.
func (r *Reader) nextData() (string, bool, error) {
	for {
		line, ok, err := r.lines.next()
		if err != nil || !ok {
			return "", false, err
		}
		if data := stripComment(line, r.opts.Comment); data != "" {
			return data, true, nil
		}
	}
}

func (r *Reader) parseRow(data string) (table.Row, error) {
	tokens := strings.Fields(data)
	if len(tokens) != r.info.Size() {
		return table.Row{}, &LineShapeError{Line: data, Got: len(tokens), Want: r.info.Size()}
	}
	kinds := r.info.Kinds()
	cells := make([]table.Cell, len(tokens))
	for i, tok := range tokens {
		c, err := ParseCell(tok, kinds[i])
		if err != nil {
			return table.Row{}, err
		}
		cells[i] = c
	}
	return table.NewRow(r.info, cells)
}

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
