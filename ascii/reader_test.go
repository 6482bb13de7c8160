package ascii

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/celltable/internal/compress"
	"github.com/hupe1980/celltable/table"
)

func TestReader_DeclaredColumns(t *testing.T) {
	r := NewReader(strings.NewReader("# Column: x int\n# Column: y double\n1 2.5\n3 4.5\n"))

	info, err := r.ColumnInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, info.Names())
	assert.Equal(t, []table.Kind{table.KindInt32, table.KindFloat64}, info.Kinds())

	got, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	want := [][]table.Cell{
		{table.Int32(1), table.Float64(2.5)},
		{table.Int32(3), table.Float64(4.5)},
	}
	for i, row := range got.Rows() {
		assert.Equal(t, want[i], row.Cells())
	}
}

func TestReader_HeaderDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names []string
		kinds []table.Kind
		units []string
		descs []string
	}{
		{
			name:  "no header",
			input: "1 2 3\n",
			names: []string{"col1", "col2", "col3"},
			kinds: []table.Kind{table.KindString, table.KindString, table.KindString},
			units: []string{"", "", ""},
			descs: []string{"", "", ""},
		},
		{
			name:  "names line",
			input: "# some title\n# a b\n1 2\n",
			names: []string{"a", "b"},
			kinds: []table.Kind{table.KindString, table.KindString},
			units: []string{"", ""},
			descs: []string{"", ""},
		},
		{
			name: "names line with declarations",
			input: "# Column: id long (count) - Object identifier\n" +
				"# Column: mag float (mag) Apparent magnitude\n" +
				"#\n" +
				"#  id   mag\n" +
				"\n" +
				"  7  1.5 # trailing\n",
			names: []string{"id", "mag"},
			kinds: []table.Kind{table.KindInt64, table.KindFloat32},
			units: []string{"count", "mag"},
			descs: []string{"Object identifier", "Apparent magnitude"},
		},
		{
			name:  "title before declarations is not a names line",
			input: "# my catalogue\n# Column: x int\n# Column: y double\n1 2.5\n",
			names: []string{"x", "y"},
			kinds: []table.Kind{table.KindInt32, table.KindFloat64},
			units: []string{"", ""},
			descs: []string{"", ""},
		},
		{
			name:  "names line with wrong count",
			input: "# Column: x int\n# a b c\n1 2\n",
			names: []string{"x", "col2"},
			kinds: []table.Kind{table.KindInt32, table.KindString},
			units: []string{"", ""},
			descs: []string{"", ""},
		},
		{
			name:  "unit with spaces and no type",
			input: "# Column: v (km / s) - radial velocity\n10\n",
			names: []string{"v"},
			kinds: []table.Kind{table.KindString},
			units: []string{"km / s"},
			descs: []string{"radial velocity"},
		},
		{
			name:  "declaration without name is ignored",
			input: "# Column:\n# Column: n [double]\n1,2\n",
			names: []string{"n"},
			kinds: []table.Kind{table.KindFloat64Vector},
			units: []string{""},
			descs: []string{""},
		},
		{
			name:  "repeated marker",
			input: "## Column: x bool\n###\n## x\ntrue\n",
			names: []string{"x"},
			kinds: []table.Kind{table.KindBool},
			units: []string{""},
			descs: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewReader(strings.NewReader(tt.input)).ColumnInfo()
			require.NoError(t, err)
			assert.Equal(t, tt.names, info.Names())
			assert.Equal(t, tt.kinds, info.Kinds())
			for i, d := range info.Descriptions() {
				assert.Equal(t, tt.units[i], d.Unit, "unit of %s", d.Name)
				assert.Equal(t, tt.descs[i], d.Description, "description of %s", d.Name)
			}
		})
	}
}

func TestReader_HeaderDetectionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrNoDataLines},
		{"comments only", "# a b\n\n# c\n", ErrNoDataLines},
		{"duplicate declaration", "# Column: x int\n# Column: x long\n1\n", table.ErrDuplicateColumnName},
		{"duplicate names line", "# a a\n1 2\n", table.ErrDuplicateColumnName},
		{"unknown keyword", "# Column: x integer\n1\n", ErrUnknownTypeKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input)).ColumnInfo()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReader_DetectionIsIdempotent(t *testing.T) {
	input := "# Column: x int\n# Column: y double\n1 2.5\n3 4.5\n"

	r := NewReader(strings.NewReader(input))
	first, err := r.ColumnInfo()
	require.NoError(t, err)
	second, err := r.ColumnInfo()
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := NewReader(strings.NewReader(input)).ColumnInfo()
	require.NoError(t, err)
	assert.True(t, first.Equal(other))

	// detection consumed no data line
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestReader_FixedNamesAndTypes(t *testing.T) {
	input := "# Column: x int (m) - first\n# Column: y double\n1 2.5\n"

	r := NewReader(strings.NewReader(input))
	require.NoError(t, r.FixColumnNames("a", "b"))
	require.NoError(t, r.FixColumnTypes(table.KindInt64, table.KindString))

	info, err := r.ColumnInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, info.Names())
	assert.Equal(t, []table.Kind{table.KindInt64, table.KindString}, info.Kinds())

	d, err := info.Description(0)
	require.NoError(t, err)
	assert.Equal(t, "m", d.Unit)
	assert.Equal(t, "first", d.Description)

	got, err := r.Read(1)
	require.NoError(t, err)
	row, err := got.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []table.Cell{table.Int64(1), table.String("2.5")}, row.Cells())
}

func TestReader_FixedNamesCountMismatch(t *testing.T) {
	r := NewReader(strings.NewReader("1 2 3\n"))

	// accepted until the header is detected
	require.NoError(t, r.FixColumnNames("a", "b"))

	_, err := r.ColumnInfo()
	assert.ErrorIs(t, err, ErrColumnCountMismatch)
	assert.ErrorIs(t, err, ErrHeaderDetection)

	r = NewReader(strings.NewReader("1 2 3\n"))
	require.NoError(t, r.FixColumnTypes(table.KindInt32))
	_, err = r.Read(-1)
	assert.ErrorIs(t, err, ErrColumnCountMismatch)
}

func TestReader_FixValidation(t *testing.T) {
	r := NewReader(strings.NewReader("1 2\n"))

	assert.ErrorIs(t, r.FixColumnNames("a", ""), ErrInvalidColumnName)
	assert.ErrorIs(t, r.FixColumnNames("a b", "c"), ErrInvalidColumnName)
	assert.ErrorIs(t, r.FixColumnNames("a", "a"), table.ErrDuplicateColumnName)
	assert.ErrorIs(t, r.FixColumnTypes(table.KindInvalid), table.ErrInvalidKind)

	require.NoError(t, r.FixColumnTypes(table.KindInt32, table.KindInt32))
	assert.ErrorIs(t, r.FixColumnNames("a"), ErrColumnCountMismatch)

	assert.ErrorIs(t, r.SetComment(""), ErrEmptyComment)
	require.NoError(t, r.SetComment("//"))

	_, err := r.ColumnInfo()
	require.NoError(t, err)

	assert.ErrorIs(t, r.SetComment("#"), ErrState)
	assert.ErrorIs(t, r.FixColumnNames("a", "b"), ErrState)
	assert.ErrorIs(t, r.FixColumnTypes(table.KindInt32, table.KindInt32), ErrState)
}

func TestReader_CustomComment(t *testing.T) {
	input := "// Column: n int\n// Column: s string\n1 a#b // note\n"
	r := NewReader(strings.NewReader(input), func(o *Options) {
		o.Comment = "//"
	})

	got, err := r.ReadAll()
	require.NoError(t, err)
	row, err := got.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []table.Cell{table.Int32(1), table.String("a#b")}, row.Cells())
}

func TestReader_Streaming(t *testing.T) {
	input := "# Column: n int\n1\n2\n\n# interleaved\n3\n4\n5\n"
	r := NewReader(strings.NewReader(input))

	left, err := r.RowsLeft()
	require.NoError(t, err)
	assert.Equal(t, 5, left)

	empty, err := r.Read(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	first, err := r.Read(2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())

	require.NoError(t, r.Skip(1))

	more, err := r.HasMoreRows()
	require.NoError(t, err)
	assert.True(t, more)

	rest, err := r.Read(10)
	require.NoError(t, err)
	require.Equal(t, 2, rest.Len())
	row, err := rest.Row(0)
	require.NoError(t, err)
	c, err := row.Get("n")
	require.NoError(t, err)
	assert.Equal(t, table.Int32(4), c)

	more, err = r.HasMoreRows()
	require.NoError(t, err)
	assert.False(t, more)

	_, err = r.Read(1)
	assert.ErrorIs(t, err, ErrNoRowsLeft)
	_, err = r.ReadAll()
	assert.ErrorIs(t, err, ErrNoRowsLeft)
	assert.NoError(t, r.Skip(3))

	empty, err = r.Read(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestReader_HasMoreRowsBeforeDetection(t *testing.T) {
	r := NewReader(strings.NewReader("# a\n1\n"))

	more, err := r.HasMoreRows()
	require.NoError(t, err)
	assert.True(t, more)

	// lookahead does not freeze the configuration
	require.NoError(t, r.FixColumnNames("b"))
	info, err := r.ColumnInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, info.Names())
}

func TestReader_DeclaredColumnInfo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fix   func(r *Reader) error
		names []string
		kinds []table.Kind
	}{
		{
			name:  "writer header",
			input: "# Column: id int\n# Column: mag double (mag) - V band\n#\n#  id mag\n",
			names: []string{"id", "mag"},
			kinds: []table.Kind{table.KindInt32, table.KindFloat64},
		},
		{
			name:  "names line only",
			input: "# a b\n\n",
			names: []string{"a", "b"},
			kinds: []table.Kind{table.KindString, table.KindString},
		},
		{
			name:  "declarations win over unrelated comment",
			input: "# Column: x int\n# Column: y long\n# produced by hand\n",
			names: []string{"x", "y"},
			kinds: []table.Kind{table.KindInt32, table.KindInt64},
		},
		{
			name:  "fixed names and types",
			input: "",
			fix: func(r *Reader) error {
				if err := r.FixColumnNames("p", "q"); err != nil {
					return err
				}
				return r.FixColumnTypes(table.KindBool, table.KindFloat32)
			},
			names: []string{"p", "q"},
			kinds: []table.Kind{table.KindBool, table.KindFloat32},
		},
		{
			name:  "fixed types keep declared names",
			input: "# Column: x\n",
			fix: func(r *Reader) error {
				return r.FixColumnTypes(table.KindInt64)
			},
			names: []string{"x"},
			kinds: []table.Kind{table.KindInt64},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			if tt.fix != nil {
				require.NoError(t, tt.fix(r))
			}

			_, err := r.ColumnInfo()
			require.ErrorIs(t, err, ErrNoDataLines)

			info, err := r.DeclaredColumnInfo()
			require.NoError(t, err)
			assert.Equal(t, tt.names, info.Names())
			assert.Equal(t, tt.kinds, info.Kinds())

			_, err = r.ReadAll()
			assert.ErrorIs(t, err, ErrNoRowsLeft)
		})
	}
}

func TestReader_DeclaredColumnInfoErrors(t *testing.T) {
	_, err := NewReader(strings.NewReader("")).DeclaredColumnInfo()
	assert.ErrorIs(t, err, ErrNoDataLines)

	_, err = NewReader(strings.NewReader("# a a\n")).DeclaredColumnInfo()
	assert.ErrorIs(t, err, table.ErrDuplicateColumnName)

	r := NewReader(strings.NewReader("# Column: x int\n# Column: y int\n"))
	require.NoError(t, r.FixColumnNames("only"))
	_, err = r.DeclaredColumnInfo()
	assert.ErrorIs(t, err, ErrColumnCountMismatch)

	// with data lines the detected layout is returned
	r = NewReader(strings.NewReader("# Column: x int\n1\n"))
	info, err := r.DeclaredColumnInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, info.Names())
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestReader_LineShape(t *testing.T) {
	header := "# Column: x int\n# Column: y int\n# Column: z int\n1 2 3\n"

	for _, line := range []string{"1 2", "1 2 3 4"} {
		t.Run(line, func(t *testing.T) {
			r := NewReader(strings.NewReader(header + line + "\n"))
			_, err := r.ReadAll()
			require.ErrorIs(t, err, ErrLineShape)

			var lse *LineShapeError
			require.ErrorAs(t, err, &lse)
			assert.Equal(t, line, lse.Line)
			assert.Equal(t, 3, lse.Want)
			assert.Equal(t, len(strings.Fields(line)), lse.Got)
		})
	}
}

func TestReader_CellConversion(t *testing.T) {
	r := NewReader(strings.NewReader("# Column: x int\n1\nabc\n"))
	_, err := r.ReadAll()

	var cce *CellConversionError
	require.ErrorAs(t, err, &cce)
	assert.Equal(t, "abc", cce.Text)
	assert.Equal(t, table.KindInt32, cce.Kind)
}

func TestReader_Arrays(t *testing.T) {
	r := NewReader(strings.NewReader("# Column: m [int+]\n<2,2>1,2,3,4\n"))
	got, err := r.ReadAll()
	require.NoError(t, err)

	row, err := got.Row(0)
	require.NoError(t, err)
	c, err := row.Cell(0)
	require.NoError(t, err)
	a, ok := c.AsInt32Array()
	require.True(t, ok)
	assert.Equal(t, []int{2, 2}, a.Shape())
	assert.Equal(t, []int32{1, 2, 3, 4}, a.Data())

	_, err = NewReader(strings.NewReader("# Column: m [int+]\n<2,2>1,2,3\n")).ReadAll()
	assert.ErrorIs(t, err, ErrArrayFormat)
}

func TestReader_DeclarationCountWarning(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := NewReader(strings.NewReader("# Column: x int\n1 2\n"), func(o *Options) {
		o.Logger = logger
	})
	info, err := r.ColumnInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "col2"}, info.Names())
	assert.Contains(t, logs.String(), "number of column descriptions")
}

func TestOpen_Compressed(t *testing.T) {
	dir := t.TempDir()
	content := "# Column: x int\n1\n2\n"

	for _, c := range []compress.Codec{compress.None, compress.Gzip, compress.Zstd, compress.LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			// the extension is irrelevant for reading, detection uses magic bytes
			path := filepath.Join(dir, "table-"+c.String()+".txt")
			f, err := os.Create(path)
			require.NoError(t, err)
			w, err := compress.NewWriter(f, c)
			require.NoError(t, err)
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
			require.NoError(t, w.Close())
			require.NoError(t, f.Close())

			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()

			got, err := r.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, 2, got.Len())
			assert.NoError(t, r.Close())
		})
	}

	_, err := Open(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
