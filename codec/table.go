package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hupe1980/celltable/table"
)

// ErrDocument is returned for JSON that is not a table document.
var ErrDocument = errors.New("codec: malformed table document")

type columnDoc struct {
	Name        string     `json:"name"`
	Type        table.Kind `json:"type"`
	Unit        string     `json:"unit,omitempty"`
	Description string     `json:"description,omitempty"`
}

type tableDoc struct {
	Columns []columnDoc    `json:"columns"`
	Rows    [][]table.Cell `json:"rows"`
}

type rawTableDoc struct {
	Columns []columnDoc         `json:"columns"`
	Rows    [][]json.RawMessage `json:"rows"`
}

// EncodeTable encodes t as
//
//	{"columns":[{"name":..,"type":..,"unit":..,"description":..}],"rows":[[..],..]}
//
// Column types are the text keywords ("int", "[double]", "[long+]"). A nil
// codec selects Default.
func EncodeTable(c Codec, t *table.Table) ([]byte, error) {
	if c == nil {
		c = Default
	}
	descs := t.ColumnInfo().Descriptions()
	doc := tableDoc{
		Columns: make([]columnDoc, len(descs)),
		Rows:    make([][]table.Cell, 0, t.Len()),
	}
	for i, d := range descs {
		doc.Columns[i] = columnDoc(d)
	}
	for _, row := range t.Rows() {
		doc.Rows = append(doc.Rows, row.Cells())
	}
	return c.Marshal(doc)
}

// DecodeTable decodes a document written by EncodeTable. Cells are decoded
// by the kind of their column and rows are validated like any other row.
func DecodeTable(c Codec, data []byte) (*table.Table, error) {
	if c == nil {
		c = Default
	}
	var doc rawTableDoc
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	descs := make([]table.ColumnDescription, len(doc.Columns))
	for i, col := range doc.Columns {
		descs[i] = table.ColumnDescription(col)
	}
	info, err := table.NewColumnInfo(descs...)
	if err != nil {
		return nil, err
	}
	kinds := info.Kinds()

	t, err := table.NewTable(info)
	if err != nil {
		return nil, err
	}
	for r, raw := range doc.Rows {
		if len(raw) != len(kinds) {
			return nil, fmt.Errorf("%w: row %d has %d cells instead of %d", ErrDocument, r, len(raw), len(kinds))
		}
		cells := make([]table.Cell, len(raw))
		for i, v := range raw {
			if cells[i], err = decodeCell(c, v, kinds[i]); err != nil {
				return nil, fmt.Errorf("%w: row %d, column %d: %w", ErrDocument, r, i, err)
			}
		}
		row, err := table.NewRow(info, cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func decodeCell(c Codec, raw []byte, kind table.Kind) (table.Cell, error) {
	switch kind {
	case table.KindBool:
		return decodeValue(c, raw, table.Bool)
	case table.KindInt32:
		return decodeValue(c, raw, table.Int32)
	case table.KindInt64:
		return decodeValue(c, raw, table.Int64)
	case table.KindFloat32:
		return decodeValue(c, raw, table.Float32)
	case table.KindFloat64:
		return decodeValue(c, raw, table.Float64)
	case table.KindString:
		return decodeValue(c, raw, table.String)
	case table.KindBoolVector:
		return decodeValue(c, raw, table.BoolVector)
	case table.KindInt32Vector:
		return decodeValue(c, raw, table.Int32Vector)
	case table.KindInt64Vector:
		return decodeValue(c, raw, table.Int64Vector)
	case table.KindFloat32Vector:
		return decodeValue(c, raw, table.Float32Vector)
	case table.KindFloat64Vector:
		return decodeValue(c, raw, table.Float64Vector)
	case table.KindBoolArray:
		return decodeArray(c, raw, table.BoolArray)
	case table.KindInt32Array:
		return decodeArray(c, raw, table.Int32Array)
	case table.KindInt64Array:
		return decodeArray(c, raw, table.Int64Array)
	case table.KindFloat32Array:
		return decodeArray(c, raw, table.Float32Array)
	case table.KindFloat64Array:
		return decodeArray(c, raw, table.Float64Array)
	default:
		return table.Cell{}, fmt.Errorf("%w: %d", table.ErrInvalidKind, uint8(kind))
	}
}

func decodeValue[T any](c Codec, raw []byte, build func(T) table.Cell) (table.Cell, error) {
	var v T
	if err := c.Unmarshal(raw, &v); err != nil {
		return table.Cell{}, err
	}
	return build(v), nil
}

func decodeArray[T table.Element](c Codec, raw []byte, build func([]int, []T) (table.Cell, error)) (table.Cell, error) {
	var v struct {
		Shape []int `json:"shape"`
		Data  []T   `json:"data"`
	}
	if err := c.Unmarshal(raw, &v); err != nil {
		return table.Cell{}, err
	}
	return build(v.Shape, v.Data)
}
