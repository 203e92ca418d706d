package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/revgrad/internal/tensor"
)

// SumTo reduces x to shape by summing over the axes along which shape would
// be broadcast to reach x.Shape().
//
//	x (3, 4) -> shape (3, 1): sum along axis 1
//	x (2, 3) -> shape ():     sum of everything
func (cpu *CPUBackend) SumTo(x *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	xShape := x.Shape()
	if xShape.Equal(shape) {
		return x.Clone(), nil
	}
	broadcast, _, err := tensor.BroadcastShapes(shape, xShape)
	if err != nil || !broadcast.Equal(xShape) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "sumTo: %v does not broadcast to %v", shape, xShape)
	}

	result, err := tensor.NewArray(shape)
	if err != nil {
		return nil, errors.WithMessage(err, "sumTo")
	}

	// Sequential: several source elements land on the same destination.
	xStrides := xShape.ComputeStrides()
	targetStrides := computeBroadcastStrides(shape, xShape)
	dst := result.Data()
	for i, v := range x.Data() {
		dst[computeFlatIndex(i, xStrides, targetStrides)] += v
	}
	return result, nil
}

// AddInto accumulates src into dst in place.
func (cpu *CPUBackend) AddInto(dst, src *tensor.Array) error {
	if !dst.Shape().Equal(src.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "addInto: %v += %v", dst.Shape(), src.Shape())
	}
	floats.Add(dst.Data(), src.Data())
	return nil
}
