// Package cpu implements the elementwise tensor backend on the host CPU.
package cpu

import (
	"fmt"

	"github.com/born-ml/tensorcheck/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure Go kernels.
type CPUBackend struct {
	device tensor.Device
}

// Compile-time check.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// To returns x tagged with the target device. Storage stays host-resident,
// so this is a copy with a new placement tag (or x itself when already there).
func (cpu *CPUBackend) To(x *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	return x.WithDevice(device)
}

// Stack joins equally shaped tensors along a new leading dimension.
func (cpu *CPUBackend) Stack(rows []*tensor.RawTensor, rowShape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	outShape := append(tensor.Shape{len(rows)}, rowShape...)
	device := cpu.device
	if len(rows) > 0 {
		device = rows[0].Device()
	}
	result, err := tensor.NewRaw(outShape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("stack: %v", err))
	}

	rowBytes := rowShape.NumElements() * dtype.Size()
	dst := result.Data()
	for i, r := range rows {
		if r.DType() != dtype || !r.Shape().Equal(rowShape) {
			panic(fmt.Sprintf("stack: row %d is %s%v, expected %s%v", i, r.DType(), r.Shape(), dtype, rowShape))
		}
		copy(dst[i*rowBytes:(i+1)*rowBytes], r.Data())
	}
	return result
}

// newLike allocates a zeroed result with x's shape and placement.
func (cpu *CPUBackend) newLike(op string, x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), dtype, x.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// checkBinary enforces the equal shape and dtype contract of binary ops.
func checkBinary(op string, a, b *tensor.RawTensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
}
