package tensor

// Backend computes the array arithmetic used by the autodiff engine.
//
// Binary elementwise operations broadcast NumPy-style and report
// incompatible shapes with ErrShapeMismatch. Results are always freshly
// allocated; operands are never modified, except by AddInto, which
// accumulates into its destination.
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *Array) (*Array, error)
	Sub(a, b *Array) (*Array, error)
	Mul(a, b *Array) (*Array, error)
	Div(a, b *Array) (*Array, error)

	// Element-wise unary operations.
	Neg(x *Array) *Array
	Scale(x *Array, c float64) *Array
	Pow(x *Array, p float64) *Array
	Exp(x *Array) *Array

	// MatMul multiplies 2-D arrays: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *Array) (*Array, error)
	// Transpose permutes axes; with no axes it reverses them.
	Transpose(x *Array, axes ...int) (*Array, error)

	// SumTo sums x over broadcast axes so the result has the given shape.
	// It is the inverse of broadcasting shape to x.Shape().
	SumTo(x *Array, shape Shape) (*Array, error)
	// AddInto performs dst += src in place; shapes must be equal.
	AddInto(dst, src *Array) error

	// Name identifies the backend in logs.
	Name() string
}
