// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff exposes the autodiff Variable, a tensor that may carry a
// gradient.
//
// The tensortest assertions refuse to compare a Variable with a plain tensor;
// compare two Variables, or detach first:
//
//	v := autodiff.NewVariable(tensor.Vector(1.0, 2.0)).RequireGrad()
//	tensortest.Equal(t, v.Detach(), want)
package autodiff

import (
	"github.com/born-ml/tensorcheck/internal/autodiff"
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// Variable wraps a dense or sparse tensor together with its gradient.
type Variable = autodiff.Variable

// NewVariable wraps data. It panics if data is nil.
func NewVariable(data tensor.Tensor) *Variable {
	return autodiff.NewVariable(data)
}
