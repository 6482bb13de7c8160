package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/celltable/table"
)

func sampleTable(t testing.TB) *table.Table {
	info, err := table.NewColumnInfo(
		table.ColumnDescription{Name: "id", Type: table.KindInt64, Unit: "count", Description: "Object id"},
		table.ColumnDescription{Name: "ok", Type: table.KindBool},
		table.ColumnDescription{Name: "small", Type: table.KindInt32},
		table.ColumnDescription{Name: "mag", Type: table.KindFloat32, Unit: "mag"},
		table.ColumnDescription{Name: "ra", Type: table.KindFloat64, Unit: "deg"},
		table.ColumnDescription{Name: "name", Type: table.KindString},
		table.ColumnDescription{Name: "flags", Type: table.KindBoolVector},
		table.ColumnDescription{Name: "flux", Type: table.KindFloat64Vector},
		table.ColumnDescription{Name: "psf", Type: table.KindFloat32Array},
		table.ColumnDescription{Name: "mask", Type: table.KindInt64Array},
	)
	require.NoError(t, err)

	psf, err := table.Float32Array([]int{2, 2}, []float32{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, err)
	mask, err := table.Int64Array([]int{3}, []int64{1, 0, 1})
	require.NoError(t, err)

	tbl, err := table.NewTable(info)
	require.NoError(t, err)
	for i := range 3 {
		row, err := table.NewRow(info, []table.Cell{
			table.Int64(int64(i) << 40), table.Bool(i%2 == 0), table.Int32(int32(-i)), table.Float32(float32(i) + 0.1),
			table.Float64(float64(i) / 3), table.String("src" + string(rune('a'+i))),
			table.BoolVector([]bool{true, i == 1}), table.Float64Vector(make([]float64, i)), psf, mask,
		})
		require.NoError(t, err)
		require.NoError(t, tbl.Append(row))
	}
	return tbl
}

func TestTableRoundTrip(t *testing.T) {
	src := sampleTable(t)

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := EncodeTable(c, src)
			require.NoError(t, err)

			got, err := DecodeTable(c, data)
			require.NoError(t, err)
			assert.True(t, src.Equal(got))
		})
	}
}

func TestEncodeTable_Document(t *testing.T) {
	info, err := table.NewColumnInfo(
		table.ColumnDescription{Name: "x", Type: table.KindInt32, Unit: "m"},
		table.ColumnDescription{Name: "v", Type: table.KindFloat64Vector},
	)
	require.NoError(t, err)
	row, err := table.NewRow(info, []table.Cell{table.Int32(1), table.Float64Vector([]float64{0.5, 2})})
	require.NoError(t, err)
	tbl, err := table.NewTable(info, row)
	require.NoError(t, err)

	data, err := EncodeTable(JSON{}, tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": [
			{"name": "x", "type": "int", "unit": "m"},
			{"name": "v", "type": "[double]"}
		],
		"rows": [[1, [0.5, 2]]]
	}`, string(data))

	// encoding does not depend on the codec
	other, err := EncodeTable(nil, tbl)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(other))
}

func TestDecodeTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `{`, ErrDocument},
		{"unknown type", `{"columns":[{"name":"x","type":"integer"}],"rows":[]}`, ErrDocument},
		{"duplicate column", `{"columns":[{"name":"x"},{"name":"x"}],"rows":[]}`, table.ErrDuplicateColumnName},
		{"short row", `{"columns":[{"name":"x","type":"int"}],"rows":[[]]}`, ErrDocument},
		{"wrong cell type", `{"columns":[{"name":"x","type":"int"}],"rows":[["a"]]}`, ErrDocument},
		{"empty string", `{"columns":[{"name":"s"}],"rows":[[""]]}`, table.ErrEmptyString},
		{"bad shape", `{"columns":[{"name":"a","type":"[int+]"}],"rows":[[{"shape":[2],"data":[1]}]]}`, table.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTable(GoJSON{}, []byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeTable_NonFinite(t *testing.T) {
	info, err := table.NewColumnInfo(
		table.ColumnDescription{Name: "x", Type: table.KindFloat64},
		table.ColumnDescription{Name: "v", Type: table.KindFloat32Vector},
	)
	require.NoError(t, err)

	tests := []struct {
		name  string
		cells []table.Cell
	}{
		{"NaN", []table.Cell{table.Float64(math.NaN()), table.Float32Vector([]float32{1})}},
		{"+Inf", []table.Cell{table.Float64(math.Inf(1)), table.Float32Vector([]float32{1})}},
		{"-Inf", []table.Cell{table.Float64(math.Inf(-1)), table.Float32Vector([]float32{1})}},
		{"vector element", []table.Cell{table.Float64(0), table.Float32Vector([]float32{float32(math.Inf(1))})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := table.NewRow(info, tt.cells)
			require.NoError(t, err)
			tbl, err := table.NewTable(info, row)
			require.NoError(t, err)

			for _, c := range []Codec{JSON{}, GoJSON{}} {
				_, err := EncodeTable(c, tbl)
				assert.Error(t, err, c.Name())
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)

	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
	assert.Equal(t, `"x"`, string(MustMarshal(nil, "x")))
}

func BenchmarkEncodeTable(b *testing.B) {
	tbl := sampleTable(b)
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := EncodeTable(c, tbl); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeTable(b *testing.B) {
	var data []byte
	tbl := sampleTable(b)
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			var err error
			if data, err = EncodeTable(c, tbl); err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := DecodeTable(c, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
