// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// The backend implements the elementwise kernels the comparator relies on:
// Add, Sub, Abs, IsNaN, MaskedFill, Max, Cast and Stack, for float32, float64,
// int32, int64, uint8 and bool tensors. Binary kernels require equal shapes
// and dtypes and panic otherwise. No kernel modifies its inputs.
package cpu
