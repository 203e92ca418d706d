// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/revgrad/internal/tensor"
)

// Shape lists the size of each dimension of an array.
type Shape = tensor.Shape

// Array is a dense row-major float64 n-dimensional array.
type Array = tensor.Array

// Number is any Go numeric type accepted by FromSlice.
type Number = tensor.Number

// MaxSizeToPrint is the largest array that String renders element by element.
const MaxSizeToPrint = tensor.MaxSizeToPrint

// Errors returned by array construction and backend kernels. Use errors.Is
// to test for them.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrInvalidShape    = tensor.ErrInvalidShape
	ErrInvalidArgument = tensor.ErrInvalidArgument
	ErrDivisionByZero  = tensor.ErrDivisionByZero
)

// NewArray allocates a zero-filled array.
func NewArray(shape Shape) (*Array, error) {
	return tensor.NewArray(shape)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) (*Array, error) {
	return tensor.Zeros(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) (*Array, error) {
	return tensor.Ones(shape)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) (*Array, error) {
	return tensor.Full(shape, value)
}

// ZerosLike creates a zero array with the shape of a.
func ZerosLike(a *Array) *Array {
	return tensor.ZerosLike(a)
}

// OnesLike creates an array of ones with the shape of a.
func OnesLike(a *Array) *Array {
	return tensor.OnesLike(a)
}

// Scalar creates a 0-dimensional array holding v.
func Scalar(v float64) *Array {
	return tensor.Scalar(v)
}

// FromSlice copies data into a new array of the given shape. Without a
// shape the result is a vector of len(data) elements.
//
// Example:
//
//	m, err := tensor.FromSlice([]int{1, 2, 3, 4}, 2, 2)
func FromSlice[T Number](data []T, shape ...int) (*Array, error) {
	return tensor.FromSlice(data, shape...)
}

// MustFromSlice is FromSlice that panics on error.
func MustFromSlice[T Number](data []T, shape ...int) *Array {
	return tensor.MustFromSlice(data, shape...)
}

// BroadcastShapes returns the broadcast shape of a and b, and whether
// broadcasting was needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
