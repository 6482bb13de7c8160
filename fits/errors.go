package fits

import "errors"

var (
	// ErrUnsupportedType is returned for columns the selected format cannot
	// represent: vectors in ASCII tables and arrays in both formats.
	ErrUnsupportedType = errors.New("fits: type not supported for serialization")

	// ErrVariableLength is returned for a vector column whose cells differ in
	// length. Only fixed-length vectors can be written.
	ErrVariableLength = errors.New("fits: variable length vector column")

	// ErrState is returned when writing to a closed Writer.
	ErrState = errors.New("fits: writer is closed")

	// ErrMalformed is returned by ReadHDUs for input that is not a sequence
	// of well-formed HDUs.
	ErrMalformed = errors.New("fits: malformed file")
)
