// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public tensor surface of tensorcheck.
//
// It exposes the dense RawTensor, the COO Sparse tensor and the Shape, DataType
// and Device metadata they carry. The types are aliases of the internal core,
// so values flow unchanged into the comparator and the tensortest assertions.
//
// # Dense tensors
//
//	x := tensor.Vector(1.0, 2.0, 3.0)
//	m := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	g := tensor.Zeros(tensor.Shape{2, 2}, tensor.Float32).WithDevice(tensor.CUDA(0))
//
// # Sparse tensors
//
// A Sparse tensor stores an Int64 index matrix of shape [sparseDims, nnz] and a
// values tensor of shape [nnz, denseDims...]. Coordinates may repeat.
// Coalesce sums duplicates and sorts the coordinates:
//
//	s, _ := tensor.NewSparseCOO([][]int64{{0, 1}, {2, 3}, {2, 3}}, tensor.Vector(1.0, 1.0, 2.0), tensor.Shape{3, 4})
//	c := tensor.Coalesce(s) // entries (0, 1)=1 and (2, 3)=3
//
// # Devices
//
// Devices are placement tags. Storage is always host memory; comparing tensors
// on different devices moves the second operand to the first one's device.
package tensor
