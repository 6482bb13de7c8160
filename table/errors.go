package table

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a column or row index is past the end.
	ErrOutOfRange = errors.New("index out of range")

	// ErrNotFound is returned when a column name is not part of a ColumnInfo.
	ErrNotFound = errors.New("column not found")

	// ErrUnknownKind is returned when a type keyword cannot be parsed.
	ErrUnknownKind = errors.New("unknown type keyword")

	// ErrInvariant is the parent of every construction-time invariant violation.
	ErrInvariant = errors.New("invariant violation")
)

// Construction invariant violations. All of them match ErrInvariant.
var (
	ErrNilColumnInfo       = fmt.Errorf("%w: nil column info", ErrInvariant)
	ErrWrongCellCount      = fmt.Errorf("%w: wrong number of cells", ErrInvariant)
	ErrCellTypeMismatch    = fmt.Errorf("%w: incompatible cell type", ErrInvariant)
	ErrEmptyString         = fmt.Errorf("%w: empty string cell", ErrInvariant)
	ErrWhitespaceString    = fmt.Errorf("%w: string cell contains whitespace", ErrInvariant)
	ErrEmptyColumnName     = fmt.Errorf("%w: empty column name", ErrInvariant)
	ErrDuplicateColumnName = fmt.Errorf("%w: duplicate column name", ErrInvariant)
	ErrInvalidKind         = fmt.Errorf("%w: invalid column kind", ErrInvariant)
	ErrShapeMismatch       = fmt.Errorf("%w: array shape does not match data length", ErrInvariant)
	ErrColumnInfoMismatch  = fmt.Errorf("%w: row does not share the table column info", ErrInvariant)
)
