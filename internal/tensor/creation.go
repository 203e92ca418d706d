package tensor

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Number is any Go numeric type FromSlice accepts.
type Number interface {
	constraints.Integer | constraints.Float
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) (*Array, error) {
	return NewArray(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) (*Array, error) {
	return Full(shape, 1)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) (*Array, error) {
	a, err := NewArray(shape)
	if err != nil {
		return nil, err
	}
	a.Fill(value)
	return a, nil
}

// ZerosLike returns a zero array with the shape of a.
func ZerosLike(a *Array) *Array {
	return &Array{shape: a.shape.Clone(), data: make([]float64, len(a.data))}
}

// OnesLike returns an array of ones with the shape of a.
func OnesLike(a *Array) *Array {
	ones := ZerosLike(a)
	ones.Fill(1)
	return ones
}

// Scalar creates a rank-0 array holding v.
func Scalar(v float64) *Array {
	return &Array{shape: Shape{}, data: []float64{v}}
}

// FromSlice creates an array from a Go slice, converting elements to
// float64. Without a shape the result is a vector of len(data) elements.
//
//	a, err := tensor.FromSlice([]int{1, 2, 3, 4}, 2, 2)
func FromSlice[T Number](data []T, shape ...int) (*Array, error) {
	s := Shape(shape)
	if len(shape) == 0 {
		s = Shape{len(data)}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v requires %d elements, but got %d",
			s, s.NumElements(), len(data))
	}

	a := &Array{shape: s.Clone(), data: make([]float64, len(data))}
	for i, v := range data {
		a.data[i] = float64(v)
	}
	return a, nil
}

// MustFromSlice is FromSlice that panics on error, for literals in examples
// and tests.
func MustFromSlice[T Number](data []T, shape ...int) *Array {
	a, err := FromSlice(data, shape...)
	if err != nil {
		panic(err)
	}
	return a
}
