package table

import "fmt"

// Kind identifies the concrete type stored in a Cell.
type Kind uint8

const (
	// KindInvalid is the zero Kind. No constructed Cell has it.
	KindInvalid Kind = iota

	KindBool
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString

	KindBoolVector
	KindInt32Vector
	KindInt64Vector
	KindFloat32Vector
	KindFloat64Vector

	KindBoolArray
	KindInt32Array
	KindInt64Array
	KindFloat32Array
	KindFloat64Array

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:       "invalid",
	KindBool:          "bool",
	KindInt32:         "int",
	KindInt64:         "long",
	KindFloat32:       "float",
	KindFloat64:       "double",
	KindString:        "string",
	KindBoolVector:    "[bool]",
	KindInt32Vector:   "[int]",
	KindInt64Vector:   "[long]",
	KindFloat32Vector: "[float]",
	KindFloat64Vector: "[double]",
	KindBoolArray:     "[bool+]",
	KindInt32Array:    "[int+]",
	KindInt64Array:    "[long+]",
	KindFloat32Array:  "[float+]",
	KindFloat64Array:  "[double+]",
}

// scalarAliases maps every accepted scalar spelling to its Kind.
var scalarAliases = map[string]Kind{
	"bool":    KindBool,
	"boolean": KindBool,
	"int":     KindInt32,
	"int32":   KindInt32,
	"long":    KindInt64,
	"int64":   KindInt64,
	"float":   KindFloat32,
	"double":  KindFloat64,
	"string":  KindString,
}

// String returns the canonical keyword of the kind (e.g. "int", "[double]", "[long+]").
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the 16 cell kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// IsScalar reports whether k is a scalar kind (including String).
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindString
}

// IsVector reports whether k is a fixed-length vector kind.
func (k Kind) IsVector() bool {
	return k >= KindBoolVector && k <= KindFloat64Vector
}

// IsArray reports whether k is an N-dimensional array kind.
func (k Kind) IsArray() bool {
	return k >= KindBoolArray && k <= KindFloat64Array
}

// Elem returns the scalar element kind. Scalars return themselves.
func (k Kind) Elem() Kind {
	switch {
	case k.IsVector():
		return k - KindBoolVector + KindBool
	case k.IsArray():
		return k - KindBoolArray + KindBool
	case k.IsScalar():
		return k
	default:
		return KindInvalid
	}
}

// VectorOf returns the vector kind with element kind elem.
// String has no vector form and yields KindInvalid.
func VectorOf(elem Kind) Kind {
	if elem < KindBool || elem > KindFloat64 {
		return KindInvalid
	}
	return elem - KindBool + KindBoolVector
}

// ArrayOf returns the array kind with element kind elem.
// String has no array form and yields KindInvalid.
func ArrayOf(elem Kind) Kind {
	if elem < KindBool || elem > KindFloat64 {
		return KindInvalid
	}
	return elem - KindBool + KindBoolArray
}

// ParseKind parses a type keyword. A bare keyword is a scalar, "[kw]" a
// vector and "[kw+]" an array of that scalar kind.
func ParseKind(keyword string) (Kind, error) {
	if n := len(keyword); n >= 2 && keyword[0] == '[' && keyword[n-1] == ']' {
		inner := keyword[1 : n-1]
		wrap := VectorOf
		if len(inner) > 0 && inner[len(inner)-1] == '+' {
			inner = inner[:len(inner)-1]
			wrap = ArrayOf
		}
		if elem, ok := scalarAliases[inner]; ok {
			if k := wrap(elem); k != KindInvalid {
				return k, nil
			}
		}
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, keyword)
	}
	if k, ok := scalarAliases[keyword]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, keyword)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
