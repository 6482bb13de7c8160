package table

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Cell is one typed table entry.
//
// Cell is a closed union over the 16 kinds listed by Kind. The active kind
// is fixed at construction and the value is never mutated afterwards:
// constructors copy their slice arguments and accessors return copies.
type Cell struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	v    any // []T for vector kinds, Array[T] for array kinds
}

// Bool returns a boolean Cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// Int32 returns a 32-bit integer Cell.
func Int32(v int32) Cell { return Cell{kind: KindInt32, i: int64(v)} }

// Int64 returns a 64-bit integer Cell.
func Int64(v int64) Cell { return Cell{kind: KindInt64, i: v} }

// Float32 returns a single precision Cell.
func Float32(v float32) Cell { return Cell{kind: KindFloat32, f: float64(v)} }

// Float64 returns a double precision Cell.
func Float64(v float64) Cell { return Cell{kind: KindFloat64, f: v} }

// String returns a string Cell. Row construction rejects empty strings and
// strings containing whitespace.
func String(v string) Cell { return Cell{kind: KindString, s: v} }

// BoolVector returns a fixed-length boolean vector Cell.
func BoolVector(v []bool) Cell { return Cell{kind: KindBoolVector, v: slices.Clone(v)} }

// Int32Vector returns a fixed-length int32 vector Cell.
func Int32Vector(v []int32) Cell { return Cell{kind: KindInt32Vector, v: slices.Clone(v)} }

// Int64Vector returns a fixed-length int64 vector Cell.
func Int64Vector(v []int64) Cell { return Cell{kind: KindInt64Vector, v: slices.Clone(v)} }

// Float32Vector returns a fixed-length float32 vector Cell.
func Float32Vector(v []float32) Cell { return Cell{kind: KindFloat32Vector, v: slices.Clone(v)} }

// Float64Vector returns a fixed-length float64 vector Cell.
func Float64Vector(v []float64) Cell { return Cell{kind: KindFloat64Vector, v: slices.Clone(v)} }

// BoolArray returns an N-dimensional boolean array Cell.
func BoolArray(shape []int, data []bool) (Cell, error) { return arrayCell(KindBoolArray, shape, data) }

// Int32Array returns an N-dimensional int32 array Cell.
func Int32Array(shape []int, data []int32) (Cell, error) {
	return arrayCell(KindInt32Array, shape, data)
}

// Int64Array returns an N-dimensional int64 array Cell.
func Int64Array(shape []int, data []int64) (Cell, error) {
	return arrayCell(KindInt64Array, shape, data)
}

// Float32Array returns an N-dimensional float32 array Cell.
func Float32Array(shape []int, data []float32) (Cell, error) {
	return arrayCell(KindFloat32Array, shape, data)
}

// Float64Array returns an N-dimensional float64 array Cell.
func Float64Array(shape []int, data []float64) (Cell, error) {
	return arrayCell(KindFloat64Array, shape, data)
}

func arrayCell[T Element](kind Kind, shape []int, data []T) (Cell, error) {
	a, err := NewArray(shape, data)
	if err != nil {
		return Cell{}, err
	}
	return Cell{kind: kind, v: a}, nil
}

// Kind returns the active variant of the cell.
func (c Cell) Kind() Kind { return c.kind }

// AsBool returns the value if Kind is KindBool.
func (c Cell) AsBool() (bool, bool) {
	return c.b, c.kind == KindBool
}

// AsInt32 returns the value if Kind is KindInt32.
func (c Cell) AsInt32() (int32, bool) {
	return int32(c.i), c.kind == KindInt32
}

// AsInt64 returns the value if Kind is KindInt64.
func (c Cell) AsInt64() (int64, bool) {
	return c.i, c.kind == KindInt64
}

// AsFloat32 returns the value if Kind is KindFloat32.
func (c Cell) AsFloat32() (float32, bool) {
	return float32(c.f), c.kind == KindFloat32
}

// AsFloat64 returns the value if Kind is KindFloat64.
func (c Cell) AsFloat64() (float64, bool) {
	return c.f, c.kind == KindFloat64
}

// AsString returns the value if Kind is KindString.
func (c Cell) AsString() (string, bool) {
	return c.s, c.kind == KindString
}

// AsBoolVector returns a copy of the vector if Kind is KindBoolVector.
func (c Cell) AsBoolVector() ([]bool, bool) { return vectorOf[bool](c, KindBoolVector) }

// AsInt32Vector returns a copy of the vector if Kind is KindInt32Vector.
func (c Cell) AsInt32Vector() ([]int32, bool) { return vectorOf[int32](c, KindInt32Vector) }

// AsInt64Vector returns a copy of the vector if Kind is KindInt64Vector.
func (c Cell) AsInt64Vector() ([]int64, bool) { return vectorOf[int64](c, KindInt64Vector) }

// AsFloat32Vector returns a copy of the vector if Kind is KindFloat32Vector.
func (c Cell) AsFloat32Vector() ([]float32, bool) { return vectorOf[float32](c, KindFloat32Vector) }

// AsFloat64Vector returns a copy of the vector if Kind is KindFloat64Vector.
func (c Cell) AsFloat64Vector() ([]float64, bool) { return vectorOf[float64](c, KindFloat64Vector) }

// AsBoolArray returns the array if Kind is KindBoolArray.
func (c Cell) AsBoolArray() (Array[bool], bool) { return arrayOf[bool](c, KindBoolArray) }

// AsInt32Array returns the array if Kind is KindInt32Array.
func (c Cell) AsInt32Array() (Array[int32], bool) { return arrayOf[int32](c, KindInt32Array) }

// AsInt64Array returns the array if Kind is KindInt64Array.
func (c Cell) AsInt64Array() (Array[int64], bool) { return arrayOf[int64](c, KindInt64Array) }

// AsFloat32Array returns the array if Kind is KindFloat32Array.
func (c Cell) AsFloat32Array() (Array[float32], bool) { return arrayOf[float32](c, KindFloat32Array) }

// AsFloat64Array returns the array if Kind is KindFloat64Array.
func (c Cell) AsFloat64Array() (Array[float64], bool) { return arrayOf[float64](c, KindFloat64Array) }

func vectorOf[T Element](c Cell, kind Kind) ([]T, bool) {
	if c.kind != kind {
		return nil, false
	}
	return slices.Clone(c.v.([]T)), true
}

func arrayOf[T Element](c Cell, kind Kind) (Array[T], bool) {
	if c.kind != kind {
		return Array[T]{}, false
	}
	return c.v.(Array[T]), true
}

// VectorLen returns the number of elements of a vector cell, or -1 for any
// other kind.
func (c Cell) VectorLen() int {
	switch v := c.v.(type) {
	case []bool:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return -1
	}
}

// Equal reports whether both cells have the same kind and value.
// Floating point NaNs compare equal to each other.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindBool:
		return c.b == o.b
	case KindInt32, KindInt64:
		return c.i == o.i
	case KindFloat32, KindFloat64:
		return floatEqual(c.f, o.f)
	case KindString:
		return c.s == o.s
	case KindBoolVector:
		return slices.Equal(c.v.([]bool), o.v.([]bool))
	case KindInt32Vector:
		return slices.Equal(c.v.([]int32), o.v.([]int32))
	case KindInt64Vector:
		return slices.Equal(c.v.([]int64), o.v.([]int64))
	case KindFloat32Vector:
		return slices.EqualFunc(c.v.([]float32), o.v.([]float32), float32Equal)
	case KindFloat64Vector:
		return slices.EqualFunc(c.v.([]float64), o.v.([]float64), floatEqual)
	case KindBoolArray:
		return c.v.(Array[bool]).equal(o.v.(Array[bool]), eq[bool])
	case KindInt32Array:
		return c.v.(Array[int32]).equal(o.v.(Array[int32]), eq[int32])
	case KindInt64Array:
		return c.v.(Array[int64]).equal(o.v.(Array[int64]), eq[int64])
	case KindFloat32Array:
		return c.v.(Array[float32]).equal(o.v.(Array[float32]), float32Equal)
	case KindFloat64Array:
		return c.v.(Array[float64]).equal(o.v.(Array[float64]), floatEqual)
	default:
		return true
	}
}

func eq[T comparable](a, b T) bool { return a == b }

func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func float32Equal(a, b float32) bool {
	return floatEqual(float64(a), float64(b))
}

// String returns the text form of the cell. The text form is what the text
// codec writes and parses back:
//
//	bool      true / false
//	ints      decimal
//	floats    shortest representation that round-trips at the kind's precision
//	vectors   comma separated elements, e.g. 1,2,3
//	arrays    <shape>data, e.g. <2,2>1,2,3,4
func (c Cell) String() string {
	switch c.kind {
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindInt32, KindInt64:
		return strconv.FormatInt(c.i, 10)
	case KindFloat32:
		return strconv.FormatFloat(c.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return c.s
	case KindBoolVector:
		return joinElems(c.v.([]bool))
	case KindInt32Vector:
		return joinElems(c.v.([]int32))
	case KindInt64Vector:
		return joinElems(c.v.([]int64))
	case KindFloat32Vector:
		return joinElems(c.v.([]float32))
	case KindFloat64Vector:
		return joinElems(c.v.([]float64))
	case KindBoolArray:
		return formatArray(c.v.(Array[bool]))
	case KindInt32Array:
		return formatArray(c.v.(Array[int32]))
	case KindInt64Array:
		return formatArray(c.v.(Array[int64]))
	case KindFloat32Array:
		return formatArray(c.v.(Array[float32]))
	case KindFloat64Array:
		return formatArray(c.v.(Array[float64]))
	default:
		return "<invalid>"
	}
}

// FormatElem formats a single vector or array element the same way Cell.String does.
func FormatElem[T Element](v T) string {
	switch x := any(v).(type) {
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	panic(fmt.Sprintf("table: unexpected element type %T", v))
}

func joinElems[T Element](v []T) string {
	var sb strings.Builder
	for i, e := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(FormatElem(e))
	}
	return sb.String()
}

func formatArray[T Element](a Array[T]) string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i, d := range a.shape {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(d))
	}
	sb.WriteByte('>')
	sb.WriteString(joinElems(a.data))
	return sb.String()
}

type arrayJSON[T Element] struct {
	Shape []int `json:"shape"`
	Data  []T   `json:"data"`
}

// MarshalJSON implements json.Marshaler. Scalars map to JSON scalars,
// vectors to JSON arrays and arrays to {"shape": [...], "data": [...]}.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindBool:
		return json.Marshal(c.b)
	case KindInt32, KindInt64:
		return json.Marshal(c.i)
	case KindFloat32:
		return json.Marshal(float32(c.f))
	case KindFloat64:
		return json.Marshal(c.f)
	case KindString:
		return json.Marshal(c.s)
	case KindBoolVector, KindInt32Vector, KindInt64Vector, KindFloat32Vector, KindFloat64Vector:
		return json.Marshal(c.v)
	case KindBoolArray:
		return marshalArray(c.v.(Array[bool]))
	case KindInt32Array:
		return marshalArray(c.v.(Array[int32]))
	case KindInt64Array:
		return marshalArray(c.v.(Array[int64]))
	case KindFloat32Array:
		return marshalArray(c.v.(Array[float32]))
	case KindFloat64Array:
		return marshalArray(c.v.(Array[float64]))
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(c.kind))
	}
}

func marshalArray[T Element](a Array[T]) ([]byte, error) {
	return json.Marshal(arrayJSON[T]{Shape: a.shape, Data: a.data})
}
