// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/tensorcheck/internal/backend/cpu"
	"github.com/born-ml/tensorcheck/tensor"
)

// Backend is the host CPU backend.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	diff := backend.Sub(tensor.Vector(1.0, 2.0), tensor.Vector(1.0, 1.5))
func New() *Backend {
	return internalcpu.New()
}
