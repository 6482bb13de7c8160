package ascii

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/celltable/table"
)

// KeywordToKind parses a column type keyword: "bool|boolean", "int|int32",
// "long|int64", "float", "double", "string", or one of the numeric/boolean
// keywords in brackets ("[int]") for a vector or with a plus ("[int+]") for
// an N-dimensional array.
func KeywordToKind(keyword string) (table.Kind, error) {
	k, err := table.ParseKind(keyword)
	if err != nil {
		return table.KindInvalid, fmt.Errorf("%w %q", ErrUnknownTypeKeyword, keyword)
	}
	return k, nil
}

// KindToKeyword returns the keyword written for a column of kind k.
// Only scalars and numeric vectors can be written.
func KindToKeyword(k table.Kind) (string, error) {
	switch k {
	case table.KindBool, table.KindInt32, table.KindInt64, table.KindFloat32, table.KindFloat64, table.KindString,
		table.KindInt32Vector, table.KindInt64Vector, table.KindFloat32Vector, table.KindFloat64Vector:
		return k.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, k)
	}
}

// ParseCell converts one token to a cell of the given kind.
//
// Vectors are comma separated elements ("1,2,3"). Arrays carry their shape
// in angle brackets before the row-major data ("<2,2>1,2,3,4").
func ParseCell(text string, kind table.Kind) (table.Cell, error) {
	c, err := parseCell(text, kind)
	if err != nil {
		return table.Cell{}, &CellConversionError{Text: text, Kind: kind, Err: err}
	}
	return c, nil
}

func parseCell(text string, kind table.Kind) (table.Cell, error) {
	switch kind {
	case table.KindBool:
		v, err := parseElem[bool](text)
		return table.Bool(v), err
	case table.KindInt32:
		v, err := parseElem[int32](text)
		return table.Int32(v), err
	case table.KindInt64:
		v, err := parseElem[int64](text)
		return table.Int64(v), err
	case table.KindFloat32:
		v, err := parseElem[float32](text)
		return table.Float32(v), err
	case table.KindFloat64:
		v, err := parseElem[float64](text)
		return table.Float64(v), err
	case table.KindString:
		return table.String(text), nil
	case table.KindBoolVector:
		v, err := parseList[bool](text)
		return table.BoolVector(v), err
	case table.KindInt32Vector:
		v, err := parseList[int32](text)
		return table.Int32Vector(v), err
	case table.KindInt64Vector:
		v, err := parseList[int64](text)
		return table.Int64Vector(v), err
	case table.KindFloat32Vector:
		v, err := parseList[float32](text)
		return table.Float32Vector(v), err
	case table.KindFloat64Vector:
		v, err := parseList[float64](text)
		return table.Float64Vector(v), err
	case table.KindBoolArray:
		return parseArray(text, table.BoolArray)
	case table.KindInt32Array:
		return parseArray(text, table.Int32Array)
	case table.KindInt64Array:
		return parseArray(text, table.Int64Array)
	case table.KindFloat32Array:
		return parseArray(text, table.Float32Array)
	case table.KindFloat64Array:
		return parseArray(text, table.Float64Array)
	default:
		return table.Cell{}, fmt.Errorf("%w: %d", table.ErrInvalidKind, uint8(kind))
	}
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

func parseElem[T table.Element](s string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		v, err := parseBool(s)
		*p = v
		return out, err
	case *int32:
		v, err := strconv.ParseInt(s, 10, 32)
		*p = int32(v)
		return out, err
	case *int64:
		v, err := strconv.ParseInt(s, 10, 64)
		*p = v
		return out, err
	case *float32:
		v, err := strconv.ParseFloat(s, 32)
		*p = float32(v)
		return out, err
	case *float64:
		v, err := strconv.ParseFloat(s, 64)
		*p = v
		return out, err
	}
	return out, fmt.Errorf("unsupported element type %T", out)
}

// parseList parses comma separated elements. An empty string is an empty
// list; empty elements are rejected.
func parseList[T table.Element](s string) ([]T, error) {
	if s == "" {
		return []T{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]T, len(parts))
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("empty element at position %d", i)
		}
		v, err := parseElem[T](p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseArray[T table.Element](s string, build func([]int, []T) (table.Cell, error)) (table.Cell, error) {
	if s == "" || s[0] != '<' {
		return table.Cell{}, fmt.Errorf("%w: expected '<' at the start of %q", ErrArrayFormat, s)
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return table.Cell{}, fmt.Errorf("%w: could not find '>' in %q", ErrArrayFormat, s)
	}

	var shape []int
	if dims := s[1:end]; dims != "" {
		for d := range strings.SplitSeq(dims, ",") {
			n, err := strconv.ParseUint(d, 10, 31)
			if err != nil {
				return table.Cell{}, fmt.Errorf("%w: bad dimension %q", ErrArrayFormat, d)
			}
			shape = append(shape, int(n))
		}
	}

	data, err := parseList[T](s[end+1:])
	if err != nil {
		return table.Cell{}, err
	}
	c, err := build(shape, data)
	if err != nil {
		return table.Cell{}, fmt.Errorf("%w: %w", ErrArrayFormat, err)
	}
	return c, nil
}
