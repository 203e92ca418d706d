package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/revgrad/internal/parallel"
	"github.com/born-ml/revgrad/internal/tensor"
)

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("add", a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("sub", a, b, floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("mul", a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting. Division by zero
// follows IEEE 754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("div", a, b, floats.DivTo, func(x, y float64) float64 { return x / y })
}

// binary runs same over equal-shaped operands, or op per element when
// either side has to be broadcast.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.Array,
	same func(dst, s, t []float64) []float64,
	op func(x, y float64) float64,
) (*tensor.Array, error) {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	result, err := tensor.NewArray(outShape)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	dst, aData, bData := result.Data(), a.Data(), b.Data()
	if !needsBroadcast {
		parallel.Range(len(dst), cpu.parallel, func(start, end int) {
			same(dst[start:end], aData[start:end], bData[start:end])
		})
		return result, nil
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStrides(a.Shape(), outShape)
	bStrides := computeBroadcastStrides(b.Shape(), outShape)
	parallel.Range(len(dst), cpu.parallel, func(start, end int) {
		for i := start; i < end; i++ {
			x := aData[computeFlatIndex(i, outStrides, aStrides)]
			y := bData[computeFlatIndex(i, outStrides, bStrides)]
			dst[i] = op(x, y)
		}
	})
	return result, nil
}
