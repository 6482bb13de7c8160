package table

import (
	"fmt"
	"iter"
	"slices"
)

// Table is an ordered sequence of Rows sharing one ColumnInfo.
type Table struct {
	info *ColumnInfo
	rows []Row
}

// NewTable creates a table. Every row must reference info; the rows are not
// otherwise re-validated.
func NewTable(info *ColumnInfo, rows ...Row) (*Table, error) {
	if info == nil {
		return nil, ErrNilColumnInfo
	}
	t := &Table{info: info, rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		if err := t.Append(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Append adds a row at the end of the table.
func (t *Table) Append(r Row) error {
	if r.info != t.info {
		return fmt.Errorf("%w (row %d)", ErrColumnInfoMismatch, len(t.rows))
	}
	t.rows = append(t.rows, r)
	return nil
}

// ColumnInfo returns the shared column description.
func (t *Table) ColumnInfo() *ColumnInfo { return t.info }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at index.
func (t *Table) Row(index int) (Row, error) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, index, len(t.rows))
	}
	return t.rows[index], nil
}

// Rows iterates over the rows in order. The sequence may be ranged over any
// number of times.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Equal reports whether both tables have equal column infos and equal rows.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.info.Equal(o.info) && slices.EqualFunc(t.rows, o.rows, Row.Equal)
}
