// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/revgrad/internal/tensor"
)

// Backend is the set of array kernels the autodiff engine needs.
//
// Binary operations broadcast their operands. Kernels never modify their
// inputs, except AddInto which accumulates src into dst.
//
// Implementations:
//   - cpu.Backend: pure Go, gonum-backed (backend/cpu)
type Backend = tensor.Backend

// Compile-time check that the public alias matches the internal interface.
var _ Backend = tensor.Backend(nil)
