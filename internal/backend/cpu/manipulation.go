package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/revgrad/internal/tensor"
)

// Transpose permutes the axes of x. With no axes it reverses them, which
// for a matrix is the usual transpose.
func (cpu *CPUBackend) Transpose(x *tensor.Array, axes ...int) (*tensor.Array, error) {
	shape := x.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, errors.Wrapf(tensor.ErrInvalidArgument, "transpose: %d axes for rank %d array", len(axes), ndim)
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "transpose: invalid axis %d for rank %d array", ax, ndim)
		}
		if seen[ax] {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "transpose: duplicate axis %d", ax)
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}
	result, err := tensor.NewArray(newShape)
	if err != nil {
		return nil, errors.WithMessage(err, "transpose")
	}

	// Source strides reordered into the result's axis order.
	srcStrides := shape.ComputeStrides()
	permuted := make([]int, ndim)
	for i, ax := range axes {
		permuted[i] = srcStrides[ax]
	}
	outStrides := newShape.ComputeStrides()
	dst, src := result.Data(), x.Data()
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, outStrides, permuted)]
	}
	return result, nil
}
