// Package safetensors reads and writes tensors in the SafeTensors format.
//
// Layout:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw bytes]
//
// F16 and BF16 tensors are widened to Float32 on load, since the tensor core
// has no half-precision types. Offsets are validated against the data section
// before any tensor is read.
package safetensors
