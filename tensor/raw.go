// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// RawTensor is a dense, row-major tensor.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed views via AsFloat32(), AsInt64(), etc.
//   - Deep copies via Clone()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // view, writes are visible
//	clone := raw.Clone()    // independent copy
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a host tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is FromSlice that panics on error.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	return tensor.MustFromSlice(data, shape)
}

// Vector creates a 1-D host tensor.
func Vector[T DType](data ...T) *RawTensor {
	return tensor.Vector(data...)
}

// Scalar creates a 0-D host tensor.
func Scalar[T DType](v T) *RawTensor {
	return tensor.Scalar(v)
}

// Zeros creates a zeroed host tensor.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Values returns a copy of the elements of r. T must match r's dtype.
func Values[T DType](r *RawTensor) []T {
	return tensor.Values[T](r)
}
