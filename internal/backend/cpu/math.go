package cpu

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/revgrad/internal/parallel"
	"github.com/born-ml/revgrad/internal/tensor"
)

// Neg computes -x.
func (cpu *CPUBackend) Neg(x *tensor.Array) *tensor.Array {
	return cpu.Scale(x, -1)
}

// Scale computes c * x.
func (cpu *CPUBackend) Scale(x *tensor.Array, c float64) *tensor.Array {
	result := tensor.ZerosLike(x)
	dst, src := result.Data(), x.Data()
	parallel.Range(len(dst), cpu.parallel, func(start, end int) {
		floats.ScaleTo(dst[start:end], c, src[start:end])
	})
	return result
}

// Pow raises every element to the power p.
func (cpu *CPUBackend) Pow(x *tensor.Array, p float64) *tensor.Array {
	return cpu.unary(x, func(v float64) float64 { return math.Pow(v, p) })
}

// Exp computes element-wise exponential.
func (cpu *CPUBackend) Exp(x *tensor.Array) *tensor.Array {
	return cpu.unary(x, math.Exp)
}

func (cpu *CPUBackend) unary(x *tensor.Array, f func(float64) float64) *tensor.Array {
	result := tensor.ZerosLike(x)
	dst, src := result.Data(), x.Data()
	parallel.For(len(dst), cpu.parallel, func(i int) {
		dst[i] = f(src[i])
	})
	return result
}
