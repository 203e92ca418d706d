// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/revgrad/internal/backend/cpu"
	"github.com/born-ml/revgrad/internal/parallel"
	"github.com/born-ml/revgrad/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls how elementwise kernels are split across
// goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig uses every CPU for large arrays.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig keeps every kernel on the calling goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// WithParallel sets the backend's parallel configuration.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	sum, err := backend.Add(x, y)
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
