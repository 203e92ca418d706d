package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/revgrad/internal/tensor"
)

// MatMul performs matrix multiplication of 2-D arrays:
// (M, K) @ (K, N) -> (M, N).
func (cpu *CPUBackend) MatMul(a, b *tensor.Array) (*tensor.Array, error) {
	aShape, bShape := a.Shape(), b.Shape()
	if aShape.Rank() != 2 || bShape.Rank() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"matmul: only 2-D arrays supported, got %v @ %v", aShape, bShape)
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul: %v @ %v", aShape, bShape)
	}

	result, err := tensor.NewArray(tensor.Shape{m, n})
	if err != nil {
		return nil, errors.WithMessage(err, "matmul")
	}

	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(a.Data(), m, k),
		general(b.Data(), k, n),
		0, general(result.Data(), m, n))
	return result, nil
}

func general(data []float64, rows, cols int) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}
