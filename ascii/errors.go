package ascii

import (
	"errors"
	"fmt"

	"github.com/hupe1980/celltable/table"
)

var (
	// ErrHeaderDetection is the parent of every header detection failure.
	ErrHeaderDetection = errors.New("ascii: header detection failed")

	// ErrNoDataLines is returned when the stream holds no data line to count
	// the columns from.
	ErrNoDataLines = fmt.Errorf("%w: no data lines found", ErrHeaderDetection)

	// ErrColumnCountMismatch is returned when fixed column names or types do
	// not match each other or the number of columns in the stream.
	ErrColumnCountMismatch = fmt.Errorf("%w: column count mismatch", ErrHeaderDetection)

	// ErrUnknownTypeKeyword is returned for a type keyword outside the grammar.
	ErrUnknownTypeKeyword = errors.New("ascii: unknown column type keyword")

	// ErrLineShape is matched by every *LineShapeError.
	ErrLineShape = errors.New("ascii: line with wrong number of cells")

	// ErrArrayFormat is returned for array text not of the form <d1,d2,...>v1,v2,...
	ErrArrayFormat = errors.New("ascii: malformed array")

	// ErrNoRowsLeft is returned when rows are requested from an exhausted stream.
	ErrNoRowsLeft = errors.New("ascii: no more table rows left")

	// ErrState is returned when the reader or writer configuration is changed
	// after reading or writing has started.
	ErrState = errors.New("ascii: configuration change after start")

	// ErrEmptyComment is returned for an empty comment marker.
	ErrEmptyComment = errors.New("ascii: empty comment marker")

	// ErrInvalidColumnName is returned for fixed names that are empty or contain whitespace.
	ErrInvalidColumnName = errors.New("ascii: invalid column name")

	// ErrUnsupportedType is returned when a kind has no text representation.
	ErrUnsupportedType = errors.New("ascii: type not supported for serialization")

	// ErrCommentMarker is returned when a cell or a column name, unit or
	// description contains the comment marker. Reading the text back would
	// cut it off there.
	ErrCommentMarker = fmt.Errorf("%w: text contains the comment marker", ErrUnsupportedType)

	// ErrEmptyVector is returned when writing a vector cell without elements,
	// which cannot be represented as a token.
	ErrEmptyVector = errors.New("ascii: empty vector cell")
)

// LineShapeError reports a data line whose token count differs from the
// column count.
type LineShapeError struct {
	Line string
	Got  int
	Want int
}

func (e *LineShapeError) Error() string {
	return fmt.Sprintf("ascii: line with wrong number of cells (%d instead of %d): %s", e.Got, e.Want, e.Line)
}

// Is makes errors.Is(err, ErrLineShape) succeed.
func (e *LineShapeError) Is(target error) bool { return target == ErrLineShape }

// CellConversionError reports text that cannot be converted to the kind of
// its column.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type CellConversionError struct {
	Text string
	Kind table.Kind
	Err  error
}

func (e *CellConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ascii: cannot convert %q to %s: %v", e.Text, e.Kind, e.Err)
	}
	return fmt.Sprintf("ascii: cannot convert %q to %s", e.Text, e.Kind)
}

func (e *CellConversionError) Unwrap() error { return e.Err }
