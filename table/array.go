package table

import (
	"fmt"
	"slices"
)

// Element is the set of scalar Go types that can be stored in vector and
// array cells.
type Element interface {
	bool | int32 | int64 | float32 | float64
}

// Array is an N-dimensional homogeneous value stored flat in row-major order.
//
// The zero Array is not a valid value; use NewArray.
type Array[T Element] struct {
	shape []int
	data  []T
}

// NewArray creates an Array, copying shape and data.
// The product of shape must equal len(data) and no dimension may be negative.
func NewArray[T Element](shape []int, data []T) (Array[T], error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return Array[T]{}, fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, d)
		}
		n *= d
	}
	if n != len(data) {
		return Array[T]{}, fmt.Errorf("%w: shape %v holds %d elements, got %d", ErrShapeMismatch, shape, n, len(data))
	}
	return Array[T]{shape: slices.Clone(shape), data: slices.Clone(data)}, nil
}

// Shape returns a copy of the dimensions.
func (a Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Data returns a copy of the flat row-major data.
func (a Array[T]) Data() []T { return slices.Clone(a.data) }

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a.data) }

// Rank returns the number of dimensions.
func (a Array[T]) Rank() int { return len(a.shape) }

// At returns the element at the given multi-dimensional index.
func (a Array[T]) At(index ...int) (T, error) {
	var zero T
	if len(index) != len(a.shape) {
		return zero, fmt.Errorf("%w: %d indices for rank %d", ErrOutOfRange, len(index), len(a.shape))
	}
	off := 0
	for i, idx := range index {
		if idx < 0 || idx >= a.shape[i] {
			return zero, fmt.Errorf("%w: index %d of dimension %d (size %d)", ErrOutOfRange, idx, i, a.shape[i])
		}
		off = off*a.shape[i] + idx
	}
	return a.data[off], nil
}

func (a Array[T]) equal(b Array[T], eq func(x, y T) bool) bool {
	return slices.Equal(a.shape, b.shape) && slices.EqualFunc(a.data, b.data, eq)
}
