package table

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
)

// Row is an immutable, validated tuple of cells bound to a ColumnInfo.
type Row struct {
	cells []Cell
	info  *ColumnInfo
}

// NewRow validates cells against info and returns the Row.
//
// The checks run in a fixed order and the first violation is returned:
// cell count, cell kinds, empty strings, strings containing whitespace.
func NewRow(info *ColumnInfo, cells []Cell) (Row, error) {
	if info == nil {
		return Row{}, ErrNilColumnInfo
	}
	if len(cells) != info.Size() {
		return Row{}, fmt.Errorf("%w (%d instead of %d)", ErrWrongCellCount, len(cells), info.Size())
	}
	for i, c := range cells {
		if c.kind != info.descs[i].Type {
			return Row{}, fmt.Errorf("%w: column %q expects %s, got %s",
				ErrCellTypeMismatch, info.descs[i].Name, info.descs[i].Type, c.kind)
		}
	}
	for i, c := range cells {
		if c.kind == KindString && c.s == "" {
			return Row{}, fmt.Errorf("%w in column %q", ErrEmptyString, info.descs[i].Name)
		}
	}
	for i, c := range cells {
		if c.kind == KindString && strings.ContainsFunc(c.s, unicode.IsSpace) {
			return Row{}, fmt.Errorf("%w: %q in column %q", ErrWhitespaceString, c.s, info.descs[i].Name)
		}
	}
	return Row{cells: slices.Clone(cells), info: info}, nil
}

// ColumnInfo returns the shared column description.
func (r Row) ColumnInfo() *ColumnInfo { return r.info }

// Len returns the number of cells.
func (r Row) Len() int { return len(r.cells) }

// Cell returns the cell at index.
func (r Row) Cell(index int) (Cell, error) {
	if index < 0 || index >= len(r.cells) {
		return Cell{}, fmt.Errorf("%w: cell %d of %d", ErrOutOfRange, index, len(r.cells))
	}
	return r.cells[index], nil
}

// Get returns the cell of the named column.
func (r Row) Get(column string) (Cell, error) {
	if r.info == nil {
		return Cell{}, fmt.Errorf("%w: %q", ErrNotFound, column)
	}
	i, err := r.info.Index(column)
	if err != nil {
		return Cell{}, err
	}
	return r.cells[i], nil
}

// Cells returns a copy of the cells.
func (r Row) Cells() []Cell { return slices.Clone(r.cells) }

// All iterates over the cells with their column index.
func (r Row) All() iter.Seq2[int, Cell] {
	return func(yield func(int, Cell) bool) {
		for i, c := range r.cells {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Equal reports whether both rows have equal column infos and equal cells.
func (r Row) Equal(o Row) bool {
	return r.info.Equal(o.info) && slices.EqualFunc(r.cells, o.cells, Cell.Equal)
}
