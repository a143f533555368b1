package compare

import (
	"math"

	"github.com/born-ml/tensorcheck/internal/sparse"
	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/pkg/errors"
)

// errorStat computes the error statistic between a and b.
//
// b is coerced to a's dtype and device first. The NaN masks of both operands
// must be identical; nanMatch is false otherwise. The difference is zeroed at
// NaN positions, made absolute when its dtype is signed, and reduced with max.
// Uint8 and Bool operands are widened to Int64 so the difference cannot wrap.
// Both operands must share a shape and hold at least one element.
func (c *Comparator) errorStat(a, b *tensor.RawTensor) (maxErr float64, nanMatch bool) {
	b = c.backend.To(c.backend.Cast(b, a.DType()), a.Device())

	nanMask := c.backend.IsNaN(a)
	if !c.backend.ArrayEqual(nanMask, c.backend.IsNaN(b)) {
		return math.NaN(), false
	}

	if !a.DType().IsSigned() {
		a = c.backend.Cast(a, tensor.Int64)
		b = c.backend.Cast(b, tensor.Int64)
	}
	diff := c.backend.MaskedFill(c.backend.Sub(a, b), nanMask, 0)
	if diff.DType().IsSigned() {
		diff = c.backend.Abs(diff)
	}
	return c.backend.Max(diff), true
}

// MaxError returns the error statistic between two dense tensors: the largest
// absolute elementwise difference, ignoring positions where both are NaN.
// Empty tensors of equal shape have zero error. Differing shapes or NaN
// positions are reported as a *MismatchError.
func (c *Comparator) MaxError(x, y *tensor.RawTensor) (float64, error) {
	if !x.Shape().Equal(y.Shape()) {
		return math.NaN(), mismatchf("", "shapes differ: %v vs %v", x.Shape(), y.Shape())
	}
	if x.NumElements() == 0 {
		return 0, nil
	}
	maxErr, nanMatch := c.errorStat(x, y)
	if !nanMatch {
		return math.NaN(), mismatchf("", "NaN positions differ")
	}
	return maxErr, nil
}

func (c *Comparator) equalTensors(path string, x, y tensor.Tensor, prec float64) error {
	if x.IsSparse() != y.IsSparse() {
		return mismatchf(path, "sparsity differs: %v vs %v", x, y)
	}
	if !x.IsSparse() {
		return c.equalDense(path, x.(*tensor.RawTensor), y.(*tensor.RawTensor), prec)
	}

	xs := sparse.Coalesce(x.(*tensor.Sparse), c.backend)
	ys := sparse.Coalesce(y.(*tensor.Sparse), c.backend)
	if err := c.equalDense(path+"(indices)", xs.Indices(), ys.Indices(), prec); err != nil {
		return err
	}
	return c.equalDense(path+"(values)", xs.Values(), ys.Values(), prec)
}

func (c *Comparator) equalDense(path string, a, b *tensor.RawTensor, prec float64) error {
	if !a.Shape().Equal(b.Shape()) {
		return mismatchf(path, "shapes differ: %v vs %v", a.Shape(), b.Shape())
	}
	if a.NumElements() == 0 {
		return nil
	}

	maxErr, nanMatch := c.errorStat(a, b)
	if !nanMatch {
		return mismatchf(path, "NaN positions differ")
	}
	if maxErr <= prec {
		return nil
	}
	err := mismatchf(path, "max error %g exceeds precision %g", maxErr, prec)
	err.MaxError = maxErr
	return err
}

// notEqualTensors succeeds only when the shapes match, there is at least one
// element, the NaN positions match and the max error reaches prec. It is
// therefore stricter than the negation of equalTensors.
func (c *Comparator) notEqualTensors(path string, x, y tensor.Tensor, prec float64) error {
	if x.IsSparse() != y.IsSparse() {
		return mismatchf(path, "sparsity differs: %v vs %v", x, y)
	}

	var a, b *tensor.RawTensor
	if x.IsSparse() {
		a = sparse.ToDense(x.(*tensor.Sparse), c.backend)
		b = sparse.ToDense(y.(*tensor.Sparse), c.backend)
	} else {
		a, b = x.(*tensor.RawTensor), y.(*tensor.RawTensor)
	}

	if !a.Shape().Equal(b.Shape()) {
		return mismatchf(path, "shapes differ: %v vs %v", a.Shape(), b.Shape())
	}
	if a.NumElements() == 0 {
		return mismatchf(path, "cannot assert inequality of empty tensors of shape %v", a.Shape())
	}

	maxErr, nanMatch := c.errorStat(a, b)
	if !nanMatch {
		return mismatchf(path, "NaN positions differ")
	}
	if maxErr >= prec {
		return nil
	}
	err := mismatchf(path, "max error %g is below precision %g", maxErr, prec)
	err.MaxError = maxErr
	return err
}

// asTensors narrows two tensor-kinded operands. A nil tensor pointer is a
// mismatch, never a panic.
func asTensors(path string, x, y any) (tensor.Tensor, tensor.Tensor, error) {
	tx, okx := x.(tensor.Tensor)
	ty, oky := y.(tensor.Tensor)
	if !okx || !oky {
		return nil, nil, errors.Errorf("internal error: %T and %T are not tensors", x, y)
	}
	if isNilTensor(tx) || isNilTensor(ty) {
		return nil, nil, mismatchf(path, "nil tensor operand: %T vs %T", x, y)
	}
	return tx, ty, nil
}

func isNilTensor(t tensor.Tensor) bool {
	switch t := t.(type) {
	case *tensor.RawTensor:
		return t == nil
	case *tensor.Sparse:
		return t == nil
	}
	return t == nil
}
