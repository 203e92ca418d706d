// Package tensor provides the n-dimensional float64 array that the autodiff
// engine computes with, and the Backend interface that implements the
// arithmetic on it.
package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// MaxSizeToPrint is the largest element count String prints in full.
const MaxSizeToPrint = 64

// Array is a dense, row-major float64 n-dimensional array.
type Array struct {
	shape Shape
	data  []float64
}

// NewArray allocates a zero-filled array of the given shape.
func NewArray(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Array{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// Shape returns the array's shape. The caller must not modify it.
func (a *Array) Shape() Shape {
	return a.shape
}

// Data returns the underlying row-major storage. Writes through it mutate
// the array.
func (a *Array) Data() []float64 {
	return a.data
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// IsScalar reports whether the array has rank 0.
func (a *Array) IsScalar() bool {
	return len(a.shape) == 0
}

// ByteSize returns the memory used by the elements.
func (a *Array) ByteSize() int {
	return len(a.data) * 8
}

// Item returns the value of a single-element array.
func (a *Array) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "Item on array of shape %v with %d elements", a.shape, len(a.data))
	}
	return a.data[0], nil
}

// At returns the element at the given coordinates.
func (a *Array) At(indices ...int) (float64, error) {
	if len(indices) != len(a.shape) {
		return 0, errors.Wrapf(ErrInvalidArgument, "At: %d indices for rank %d array", len(indices), len(a.shape))
	}
	strides := a.shape.ComputeStrides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			return 0, errors.Wrapf(ErrInvalidArgument, "At: index %d out of range for axis %d of %v", idx, i, a.shape)
		}
		flat += idx * strides[i]
	}
	return a.data[flat], nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{shape: a.shape.Clone(), data: data}
}

// Fill sets every element to v.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// String prints small arrays in full, nested by axis, and summarises
// larger ones.
func (a *Array) String() string {
	if len(a.data) > MaxSizeToPrint {
		return fmt.Sprintf("Array(shape=%v, %s elements, %s)",
			a.shape, humanize.Comma(int64(len(a.data))), humanize.Bytes(uint64(a.ByteSize())))
	}
	var sb strings.Builder
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, axis, offset int) {
	if axis == len(a.shape) {
		sb.WriteString(strconv.FormatFloat(a.data[offset], 'g', -1, 64))
		return
	}
	stride := a.shape[axis+1:].NumElements()
	sb.WriteByte('[')
	for i := 0; i < a.shape[axis]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.format(sb, axis+1, offset+i*stride)
	}
	sb.WriteByte(']')
}
