// Package cpu implements tensor.Backend in pure Go, using gonum for the
// dense kernels and internal/parallel to split large elementwise loops.
package cpu

import (
	"github.com/born-ml/revgrad/internal/parallel"
	"github.com/born-ml/revgrad/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	parallel parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets how elementwise kernels are split across goroutines.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a CPU backend. By default kernels use parallel.DefaultConfig.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{parallel: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the backend's parallel configuration.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}
