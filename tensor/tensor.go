// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// Tensor is implemented by RawTensor and Sparse.
type Tensor = tensor.Tensor

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Device is a placement tag: a device kind and an ordinal.
type Device = tensor.Device

// DeviceKind identifies the family of a Device.
type DeviceKind = tensor.DeviceKind

// Device kinds.
const (
	KindCPU    DeviceKind = tensor.KindCPU
	KindCUDA   DeviceKind = tensor.KindCUDA
	KindVulkan DeviceKind = tensor.KindVulkan
	KindMetal  DeviceKind = tensor.KindMetal
	KindWebGPU DeviceKind = tensor.KindWebGPU
)

// CPU is the host device.
var CPU = tensor.CPU

// CUDA returns the CUDA device with the given ordinal.
func CUDA(index int) Device {
	return tensor.CUDA(index)
}

// WebGPU returns the WebGPU device with the given ordinal.
func WebGPU(index int) Device {
	return tensor.WebGPU(index)
}

// ParseDevice parses "cpu", "cuda", "cuda:1" and the like.
func ParseDevice(s string) (Device, error) {
	return tensor.ParseDevice(s)
}

// Backend is the set of elementwise kernels the comparator needs.
type Backend = tensor.Backend
