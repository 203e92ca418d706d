package autodiff

import (
	"k8s.io/klog/v2"

	"github.com/born-ml/revgrad/internal/tensor"
)

// Option configures a Graph.
type Option func(*Graph)

// WithBackend sets the backend that computes forward values and gradients.
// The default is the CPU backend.
func WithBackend(backend tensor.Backend) Option {
	return func(g *Graph) {
		g.backend = backend
	}
}

// WithLogger sets the logger used to trace backward passes. Verbosity 2
// logs the topological order, verbosity 3 every rule dispatch. The default
// is klog.Background().
func WithLogger(logger klog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithStrictDivision makes Div fail with ErrDivisionByZero when the divisor
// has a zero element, instead of producing Inf or NaN.
func WithStrictDivision(strict bool) Option {
	return func(g *Graph) {
		g.strictDivision = strict
	}
}
