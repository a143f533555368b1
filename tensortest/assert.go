// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensortest provides tolerance-aware assertions for tests that work
// with dense tensors, sparse tensors and autodiff variables.
//
// The free functions follow the testify calling convention:
//
//	func TestMatMul(t *testing.T) {
//	    got := ...
//	    tensortest.Equal(t, got, want)
//	    tensortest.EqualTol(t, got, want, 1e-3, "after %d steps", n)
//	}
//
// Suite bundles the same assertions with a per-test seeded random source
// and sparse fixtures. Two Variables are compared by their data. Comparing a
// Variable with a non-Variable is a usage error: it is reported and the test
// is stopped with FailNow.
package tensortest

import (
	"github.com/born-ml/tensorcheck/internal/compare"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// DefaultPrecision is the tolerance used when none is given.
const DefaultPrecision = compare.DefaultPrecision

// ErrTypeMismatch is reported when a Variable is compared with a non-Variable.
var ErrTypeMismatch = compare.ErrTypeMismatch

// MismatchError describes where and why two values differ.
type MismatchError = compare.MismatchError

var defaultComparator = compare.New()

type tHelper interface {
	Helper()
}

type failNower interface {
	FailNow()
}

// Equal asserts that x and y are equal within DefaultPrecision.
func Equal(t assert.TestingT, x, y any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, defaultComparator.Equal(x, y), msgAndArgs...)
}

// EqualTol asserts that x and y are equal within prec.
func EqualTol(t assert.TestingT, x, y any, prec float64, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, defaultComparator.EqualTol(x, y, prec), msgAndArgs...)
}

// NotEqual asserts that x and y differ by at least DefaultPrecision.
func NotEqual(t assert.TestingT, x, y any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, defaultComparator.NotEqual(x, y), msgAndArgs...)
}

// NotEqualTol asserts that x and y differ by at least prec.
func NotEqualTol(t assert.TestingT, x, y any, prec float64, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, defaultComparator.NotEqualTol(x, y, prec), msgAndArgs...)
}

// report turns a comparator result into a testify failure.
// Usage errors stop the test when t supports FailNow.
func report(t assert.TestingT, err error, msgAndArgs ...any) bool {
	if err == nil {
		return true
	}
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	assert.Fail(t, err.Error(), msgAndArgs...)
	if errors.Is(err, compare.ErrTypeMismatch) || errors.Is(err, compare.ErrNegativePrecision) {
		if f, ok := t.(failNower); ok {
			f.FailNow()
		}
	}
	return false
}
