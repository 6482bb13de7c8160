package fits

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/astrogo/fitsio"

	"github.com/hupe1980/celltable/table"
)

// column is the layout of one table column in the selected format.
type column struct {
	desc   table.ColumnDescription
	tform  string
	repeat int // element count of vector columns
	ascii  bool
}

// planColumns derives the format code of every column. Widths that depend
// on the data (integers and strings in ASCII tables, strings and vectors in
// binary tables) are measured over all rows.
func planColumns(t *table.Table, format Format) ([]column, error) {
	descs := t.ColumnInfo().Descriptions()
	cols := make([]column, len(descs))
	for i, d := range descs {
		var (
			c   column
			err error
		)
		switch format {
		case FormatASCII:
			c, err = asciiColumn(t, i, d)
			c.ascii = true
		default:
			c, err = binaryColumn(t, i, d)
		}
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", d.Name, err)
		}
		c.desc = d
		cols[i] = c
	}
	return cols, nil
}

func asciiColumn(t *table.Table, i int, d table.ColumnDescription) (column, error) {
	switch d.Type {
	case table.KindBool:
		return column{tform: "I1"}, nil
	case table.KindInt32, table.KindInt64:
		w := maxWidth(t, i)
		return column{tform: "I" + strconv.Itoa(w)}, nil
	case table.KindFloat32, table.KindFloat64:
		return column{tform: "E12"}, nil
	case table.KindString:
		w := maxWidth(t, i)
		return column{tform: "A" + strconv.Itoa(w)}, nil
	default:
		return column{}, fmt.Errorf("%w in ASCII tables: %s", ErrUnsupportedType, d.Type)
	}
}

// binaryCodes maps scalar kinds to binary table type codes.
var binaryCodes = map[table.Kind]string{
	table.KindBool:    "L",
	table.KindInt32:   "J",
	table.KindInt64:   "K",
	table.KindFloat32: "E",
	table.KindFloat64: "D",
}

func binaryColumn(t *table.Table, i int, d table.ColumnDescription) (column, error) {
	switch {
	case d.Type == table.KindString:
		return column{tform: strconv.Itoa(maxWidth(t, i)) + "A"}, nil
	case d.Type.IsScalar():
		return column{tform: binaryCodes[d.Type]}, nil
	case d.Type.IsVector():
		n, err := vectorLength(t, i)
		if err != nil {
			return column{}, err
		}
		return column{tform: strconv.Itoa(n) + binaryCodes[d.Type.Elem()], repeat: n}, nil
	default:
		return column{}, fmt.Errorf("%w: %s", ErrUnsupportedType, d.Type)
	}
}

// maxWidth returns the longest text form over the cells of column i, at
// least 1.
func maxWidth(t *table.Table, i int) int {
	w := 1
	for _, row := range t.Rows() {
		c, _ := row.Cell(i)
		w = max(w, len(c.String()))
	}
	return w
}

// vectorLength returns the common length of the vectors in column i. A
// column without rows is given length 1.
func vectorLength(t *table.Table, i int) (int, error) {
	n := -1
	for r, row := range t.Rows() {
		c, _ := row.Cell(i)
		switch l := c.VectorLen(); {
		case n < 0:
			n = l
		case l != n:
			return 0, fmt.Errorf("%w: row %d has %d elements instead of %d", ErrVariableLength, r, l, n)
		}
	}
	if n < 0 {
		return 1, nil
	}
	return n, nil
}

// fitsColumn describes the column to fitsio. TDESCn is added separately.
func (col *column) fitsColumn(logger *slog.Logger, n int) fitsio.Column {
	return fitsio.Column{
		Name:   fitValue(logger, "TTYPE"+strconv.Itoa(n), col.desc.Name),
		Format: col.tform,
		Unit:   fitValue(logger, "TUNIT"+strconv.Itoa(n), col.desc.Unit),
	}
}

// value returns a pointer to the Go value fitsio encodes for cell c:
// integers, float64 and strings in ASCII tables, the exact element type in
// binary tables and a fixed size array for vectors longer than one.
func (col *column) value(c table.Cell) any {
	if col.ascii {
		switch c.Kind() {
		case table.KindBool:
			v, _ := c.AsBool()
			n := 0
			if v {
				n = 1
			}
			return &n
		case table.KindInt32:
			v, _ := c.AsInt32()
			n := int(v)
			return &n
		case table.KindInt64:
			v, _ := c.AsInt64()
			n := int(v)
			return &n
		case table.KindFloat32:
			v, _ := c.AsFloat32()
			f := float64(v)
			return &f
		case table.KindFloat64:
			v, _ := c.AsFloat64()
			return &v
		}
	}

	switch c.Kind() {
	case table.KindBool:
		v, _ := c.AsBool()
		return &v
	case table.KindInt32:
		v, _ := c.AsInt32()
		return &v
	case table.KindInt64:
		v, _ := c.AsInt64()
		return &v
	case table.KindFloat32:
		v, _ := c.AsFloat32()
		return &v
	case table.KindFloat64:
		v, _ := c.AsFloat64()
		return &v
	case table.KindBoolVector:
		v, _ := c.AsBoolVector()
		return fixedArray(v)
	case table.KindInt32Vector:
		v, _ := c.AsInt32Vector()
		return fixedArray(v)
	case table.KindInt64Vector:
		v, _ := c.AsInt64Vector()
		return fixedArray(v)
	case table.KindFloat32Vector:
		v, _ := c.AsFloat32Vector()
		return fixedArray(v)
	case table.KindFloat64Vector:
		v, _ := c.AsFloat64Vector()
		return fixedArray(v)
	default:
		s := c.String()
		return &s
	}
}

// fixedArray copies v into a new [len(v)]T. A single element is passed as
// a scalar, matching the column type fitsio derives from a repeat count of 1.
func fixedArray[T any](v []T) any {
	if len(v) == 1 {
		return &v[0]
	}
	arr := reflect.New(reflect.ArrayOf(len(v), reflect.TypeFor[T]()))
	reflect.Copy(arr.Elem(), reflect.ValueOf(v))
	return arr.Interface()
}
