// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for revgrad arrays.
//
// # Overview
//
// This package implements tensor.Backend with:
//   - Pure Go implementation (no CGO)
//   - gonum floats kernels for same-shape elementwise work
//   - gonum BLAS (blas64.Gemm) for matrix multiplication
//   - NumPy-compatible broadcasting, and SumTo to undo it
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/revgrad/autodiff"
//	    "github.com/born-ml/revgrad/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithParallel(cpu.SequentialConfig()))
//	    g := autodiff.NewGraph(autodiff.WithBackend(backend))
//	}
//
// # Thread Safety
//
// The CPU backend holds no mutable state and is safe for concurrent use.
// Large elementwise kernels are split across goroutines according to its
// ParallelConfig.
package cpu
