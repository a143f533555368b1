// Package compare implements tolerant equality for tensors and the values
// that commonly hold them in tests.
//
// A Comparator dispatches on the kind of its operands, in this order:
//
//  1. autodiff variables are unwrapped (both operands must be variables)
//  2. dense and sparse tensors (sparse ones are coalesced first)
//  3. values of a type with a registered metric
//  4. strings, compared exactly
//  5. sets (map[K]struct{}), compared by membership
//  6. slices and arrays, compared element by element up to the shorter length
//  7. numbers, compared by |x - y| against the precision
//  8. anything else, compared exactly with go-cmp
//
// Example:
//
//	c := compare.New(compare.WithPrecision(1e-6))
//	if err := c.Equal(got, want); err != nil {
//	    t.Fatal(err)
//	}
package compare

import (
	"fmt"
	"math"
	"reflect"

	"github.com/born-ml/tensorcheck/internal/autodiff"
	"github.com/born-ml/tensorcheck/internal/backend/cpu"
	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultPrecision is the tolerance used when none is configured.
const DefaultPrecision = 1e-5

// Comparator holds the configuration shared by all comparisons.
// It keeps no state between calls and is safe for concurrent use.
type Comparator struct {
	backend   tensor.Backend
	precision float64
	metrics   map[reflect.Type]func(a, b any) float64
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithPrecision sets the default tolerance.
func WithPrecision(prec float64) Option {
	return func(c *Comparator) {
		c.precision = prec
	}
}

// WithBackend sets the backend used for tensor arithmetic. Defaults to the CPU backend.
func WithBackend(b tensor.Backend) Option {
	return func(c *Comparator) {
		c.backend = b
	}
}

// WithMetric registers a distance for values of type T. Two values of type T
// are then equal when fn(x, y) <= precision.
func WithMetric[T any](fn func(a, b T) float64) Option {
	return func(c *Comparator) {
		c.metrics[reflect.TypeFor[T]()] = func(a, b any) float64 {
			return fn(a.(T), b.(T))
		}
	}
}

// New creates a Comparator.
func New(opts ...Option) *Comparator {
	c := &Comparator{
		backend:   cpu.New(),
		precision: DefaultPrecision,
		metrics:   make(map[reflect.Type]func(a, b any) float64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Precision returns the default tolerance.
func (c *Comparator) Precision() float64 {
	return c.precision
}

// Backend returns the backend used for tensor arithmetic.
func (c *Comparator) Backend() tensor.Backend {
	return c.backend
}

// Equal is EqualTol with the default precision.
func (c *Comparator) Equal(x, y any) error {
	return c.EqualTol(x, y, c.precision)
}

// EqualTol returns nil when x and y are equal within prec.
// Otherwise it returns a *MismatchError, or an error wrapping ErrTypeMismatch
// when only one operand is an autodiff variable.
func (c *Comparator) EqualTol(x, y any, prec float64) error {
	if err := checkPrecision(prec); err != nil {
		return err
	}
	return c.equal("", x, y, prec)
}

// NotEqual is NotEqualTol with the default precision.
func (c *Comparator) NotEqual(x, y any) error {
	return c.NotEqualTol(x, y, c.precision)
}

// NotEqualTol returns nil when x and y differ by at least prec.
//
// For tensors this is not the negation of EqualTol: empty tensors, tensors of
// different shapes and tensors with NaNs in different positions never satisfy it.
// Strings, sets, slices and values without a distance are compared exactly.
func (c *Comparator) NotEqualTol(x, y any, prec float64) error {
	if err := checkPrecision(prec); err != nil {
		return err
	}
	return c.notEqual("", x, y, prec)
}

func checkPrecision(prec float64) error {
	if prec < 0 || math.IsNaN(prec) {
		return errors.Wrapf(ErrNegativePrecision, "got %v", prec)
	}
	return nil
}

func mismatchf(path, format string, args ...any) *MismatchError {
	return &MismatchError{
		Path:     path,
		Reason:   fmt.Sprintf(format, args...),
		MaxError: math.NaN(),
	}
}

func unwrapVariables(path string, x, y any) (any, any, error) {
	vx, okx := x.(*autodiff.Variable)
	vy, oky := y.(*autodiff.Variable)
	switch {
	case okx && oky:
		return vx.Data(), vy.Data(), nil
	case okx || oky:
		if path == "" {
			return nil, nil, errors.Wrapf(ErrTypeMismatch, "cannot compare %T and %T", x, y)
		}
		return nil, nil, errors.Wrapf(ErrTypeMismatch, "at %s: cannot compare %T and %T", path, x, y)
	}
	return x, y, nil
}

func (c *Comparator) equal(path string, x, y any, prec float64) error {
	x, y, err := unwrapVariables(path, x, y)
	if err != nil {
		return err
	}

	kx, ky := c.classify(x), c.classify(y)
	if klog.V(4).Enabled() {
		klog.Infof("equal %q: %s vs %s, precision %g", path, kx, ky, prec)
	}

	switch {
	case kx.isTensor() && ky.isTensor():
		tx, ty, err := asTensors(path, x, y)
		if err != nil {
			return err
		}
		return c.equalTensors(path, tx, ty, prec)

	case kx.isTensor() || ky.isTensor():
		return mismatchf(path, "cannot compare %s %T with %s %T", kx, x, ky, y)

	case kx == kindString && ky == kindString:
		sx, sy := reflect.ValueOf(x).String(), reflect.ValueOf(y).String()
		if sx != sy {
			return mismatchf(path, "%q != %q", sx, sy)
		}
		return nil

	case kx == kindSet && ky == kindSet:
		if ok, reason := setsEqual(x, y); !ok {
			return mismatchf(path, "%s", reason)
		}
		return nil

	case kx == kindIterable && ky == kindIterable:
		// Only the common prefix is compared; lengths are not checked.
		vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
		n := min(vx.Len(), vy.Len())
		for i := 0; i < n; i++ {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			if err := c.equal(elemPath, vx.Index(i).Interface(), vy.Index(i).Interface(), prec); err != nil {
				return err
			}
		}
		return nil
	}

	if d, ok := c.distance(x, y, kx, ky); ok {
		if d <= prec {
			return nil
		}
		err := mismatchf(path, "%v and %v differ by %g, more than precision %g", x, y, d, prec)
		err.MaxError = d
		return err
	}
	if !exactEqual(x, y) {
		return mismatchf(path, "values differ (-first +second):\n%s", exactDiff(x, y))
	}
	return nil
}

func (c *Comparator) notEqual(path string, x, y any, prec float64) error {
	x, y, err := unwrapVariables(path, x, y)
	if err != nil {
		return err
	}

	kx, ky := c.classify(x), c.classify(y)
	if klog.V(4).Enabled() {
		klog.Infof("notEqual %q: %s vs %s, precision %g", path, kx, ky, prec)
	}

	switch {
	case kx.isTensor() && ky.isTensor():
		tx, ty, err := asTensors(path, x, y)
		if err != nil {
			return err
		}
		return c.notEqualTensors(path, tx, ty, prec)

	case kx.isTensor() || ky.isTensor():
		// A tensor never equals a non-tensor.
		return nil

	case kx == kindString && ky == kindString:
		sx, sy := reflect.ValueOf(x).String(), reflect.ValueOf(y).String()
		if sx == sy {
			return mismatchf(path, "both values are %q", sx)
		}
		return nil

	case kx == kindSet && ky == kindSet:
		if ok, _ := setsEqual(x, y); ok {
			return mismatchf(path, "sets are equal: %v", x)
		}
		return nil

	case (kx == kindIterable || kx == kindSet) && (ky == kindIterable || ky == kindSet):
		if exactEqual(x, y) {
			return mismatchf(path, "values are equal: %v", x)
		}
		return nil
	}

	if d, ok := c.distance(x, y, kx, ky); ok {
		if d >= prec {
			return nil
		}
		err := mismatchf(path, "%v and %v differ by %g, less than precision %g", x, y, d, prec)
		err.MaxError = d
		return err
	}
	if exactEqual(x, y) {
		return mismatchf(path, "values are equal: %v", x)
	}
	return nil
}
