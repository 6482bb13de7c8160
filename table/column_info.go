package table

import (
	"fmt"
	"slices"
)

// ColumnDescription describes one column of a table.
type ColumnDescription struct {
	Name        string
	Type        Kind
	Unit        string
	Description string
}

// ColumnInfo is the ordered, immutable list of column descriptions shared by
// every Row and Table built from it.
//
// A *ColumnInfo is meant to be created once per logical table and passed by
// pointer; it is safe for concurrent read access.
type ColumnInfo struct {
	descs []ColumnDescription
	index map[string]int
}

// NewColumnInfo creates a ColumnInfo from the given descriptions.
//
// Names must be non-empty and pairwise distinct (case-sensitive). A
// description with a zero Type is treated as a string column.
func NewColumnInfo(descs ...ColumnDescription) (*ColumnInfo, error) {
	info := &ColumnInfo{
		descs: make([]ColumnDescription, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w (column %d)", ErrEmptyColumnName, i)
		}
		if _, dup := info.index[d.Name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumnName, d.Name)
		}
		if d.Type == KindInvalid {
			d.Type = KindString
		}
		if !d.Type.Valid() {
			return nil, fmt.Errorf("%w: column %q has kind %d", ErrInvalidKind, d.Name, uint8(d.Type))
		}
		info.descs[i] = d
		info.index[d.Name] = i
	}
	return info, nil
}

// NewColumnInfoFromNames creates a ColumnInfo of string columns.
func NewColumnInfoFromNames(names ...string) (*ColumnInfo, error) {
	descs := make([]ColumnDescription, len(names))
	for i, n := range names {
		descs[i] = ColumnDescription{Name: n, Type: KindString}
	}
	return NewColumnInfo(descs...)
}

// Size returns the number of columns.
func (ci *ColumnInfo) Size() int { return len(ci.descs) }

// Description returns the description of the column at index.
func (ci *ColumnInfo) Description(index int) (ColumnDescription, error) {
	if index < 0 || index >= len(ci.descs) {
		return ColumnDescription{}, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, index, len(ci.descs))
	}
	return ci.descs[index], nil
}

// Descriptions returns a copy of all column descriptions in order.
func (ci *ColumnInfo) Descriptions() []ColumnDescription {
	return slices.Clone(ci.descs)
}

// Find returns the index of the named column. Absence is not an error.
func (ci *ColumnInfo) Find(name string) (int, bool) {
	i, ok := ci.index[name]
	return i, ok
}

// Index returns the index of the named column or ErrNotFound.
func (ci *ColumnInfo) Index(name string) (int, error) {
	i, ok := ci.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return i, nil
}

// Name returns the name of the column at index.
func (ci *ColumnInfo) Name(index int) (string, error) {
	d, err := ci.Description(index)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// Names returns the column names in order.
func (ci *ColumnInfo) Names() []string {
	names := make([]string, len(ci.descs))
	for i, d := range ci.descs {
		names[i] = d.Name
	}
	return names
}

// Kinds returns the column kinds in order.
func (ci *ColumnInfo) Kinds() []Kind {
	kinds := make([]Kind, len(ci.descs))
	for i, d := range ci.descs {
		kinds[i] = d.Type
	}
	return kinds
}

// Equal reports whether both infos describe the same columns in the same order.
func (ci *ColumnInfo) Equal(o *ColumnInfo) bool {
	if ci == o {
		return true
	}
	if ci == nil || o == nil {
		return false
	}
	return slices.Equal(ci.descs, o.descs)
}
