// Package table provides the typed in-memory table model.
//
// A Cell holds exactly one of 16 kinds: the scalars bool, int32, int64,
// float32, float64 and string, a fixed-length vector of each numeric or
// boolean scalar, and an N-dimensional row-major Array of each of those.
//
// A ColumnInfo describes the columns (name, kind, unit, description) and is
// shared by pointer between every Row and Table built from it:
//
//	info, _ := table.NewColumnInfo(
//	    table.ColumnDescription{Name: "id", Type: table.KindInt64},
//	    table.ColumnDescription{Name: "flux", Type: table.KindFloat64, Unit: "mJy"},
//	)
//	row, err := table.NewRow(info, []table.Cell{table.Int64(1), table.Float64(0.5)})
//	t, err := table.NewTable(info, row)
//
// Rows are validated at construction: the cell count must match the column
// count, each cell kind must match its column, and string cells must be
// non-empty and free of whitespace.
package table
