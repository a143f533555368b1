// Package autodiff provides the gradient-tracking wrapper around tensors.
//
// A Variable pairs a tensor with the metadata reverse-mode differentiation needs:
// whether gradients are tracked and the gradient accumulated so far.
//
// Usage:
//
//	x := autodiff.NewVariable(tensor.Vector(2.0, 3.0)).RequireGrad()
//	x.AccumulateGrad(tensor.Vector(1.0, 1.0), cpu.New())
//	fmt.Println(x.Grad()) // [1, 1]
package autodiff

import (
	"fmt"

	"github.com/born-ml/tensorcheck/internal/tensor"
)

// Variable wraps a dense or sparse tensor with gradient-tracking metadata.
type Variable struct {
	data         tensor.Tensor
	grad         *tensor.RawTensor // Accumulated gradient, nil until the first backward pass
	requiresGrad bool              // Whether to compute gradients for this variable
}

// NewVariable wraps data without gradient tracking.
func NewVariable(data tensor.Tensor) *Variable {
	if data == nil {
		panic("autodiff: NewVariable(nil)")
	}
	return &Variable{data: data}
}

// RequireGrad marks the variable for gradient computation.
// Returns the variable itself for method chaining.
func (v *Variable) RequireGrad() *Variable {
	v.requiresGrad = true
	return v
}

// RequiresGrad returns true if this variable requires gradient computation.
func (v *Variable) RequiresGrad() bool {
	return v.requiresGrad
}

// Data returns the wrapped tensor.
func (v *Variable) Data() tensor.Tensor {
	return v.data
}

// Detach returns the wrapped tensor, dropping gradient tracking.
// The tensor is shared, not copied.
func (v *Variable) Detach() tensor.Tensor {
	return v.data
}

// Grad returns the accumulated gradient, or nil.
func (v *Variable) Grad() *tensor.RawTensor {
	return v.grad
}

// SetGrad replaces the accumulated gradient.
func (v *Variable) SetGrad(grad *tensor.RawTensor) {
	v.grad = grad
}

// AccumulateGrad adds grad to the accumulated gradient using backend.
// The first call stores a copy of grad.
func (v *Variable) AccumulateGrad(grad *tensor.RawTensor, backend tensor.Backend) {
	if !grad.Shape().Equal(v.data.Shape()) {
		panic(fmt.Sprintf("autodiff: gradient shape %v does not match variable shape %v", grad.Shape(), v.data.Shape()))
	}
	if v.grad == nil {
		v.grad = grad.Clone()
		return
	}
	v.grad = backend.Add(v.grad, backend.Cast(grad, v.grad.DType()))
}

// ZeroGrad clears the accumulated gradient.
func (v *Variable) ZeroGrad() {
	v.grad = nil
}

// String returns a short description of the variable.
func (v *Variable) String() string {
	return fmt.Sprintf("Variable(%v, requiresGrad=%t)", v.data, v.requiresGrad)
}
