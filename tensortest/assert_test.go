// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensortest_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/born-ml/tensorcheck/autodiff"
	"github.com/born-ml/tensorcheck/tensor"
	"github.com/born-ml/tensorcheck/tensortest"
	"github.com/stretchr/testify/assert"
)

// recordingT captures failures instead of failing the enclosing test.
type recordingT struct {
	messages []string
	stopped  bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.stopped = true
}

func (r *recordingT) failed() bool {
	return len(r.messages) > 0
}

// errorfOnly has no FailNow.
type errorfOnly struct {
	failed bool
}

func (e *errorfOnly) Errorf(string, ...any) {
	e.failed = true
}

func TestEqual_Passes(t *testing.T) {
	x := tensor.Vector(1.0, math.NaN(), 3.0)
	tensortest.Equal(t, x, tensor.Vector(1.0, math.NaN(), 3.0+1e-7))
	tensortest.EqualTol(t, x, tensor.Vector(1.5, math.NaN(), 3.0), 0.5)
	tensortest.NotEqual(t, x, tensor.Vector(2.0, math.NaN(), 3.0))
	tensortest.NotEqualTol(t, 1.0, 1.25, 0.25)
	tensortest.Equal(t, []any{"a", 2}, []any{"a", 2.0})
}

func TestEqual_ReportsMismatch(t *testing.T) {
	rec := &recordingT{}
	ok := tensortest.Equal(rec, tensor.Vector(1.0, 2.0), tensor.Vector(1.0, 2.5), "step %d", 3)

	assert.False(t, ok)
	assert.True(t, rec.failed())
	assert.False(t, rec.stopped, "an ordinary mismatch must not stop the test")
	assert.Contains(t, rec.messages[0], "max error 0.5")
	assert.Contains(t, rec.messages[0], "step 3")
}

func TestNotEqual_ReportsMismatch(t *testing.T) {
	rec := &recordingT{}
	ok := tensortest.NotEqualTol(rec, tensor.Vector(1.0), tensor.Vector(1.1), 0.5)

	assert.False(t, ok)
	assert.True(t, rec.failed())
	assert.False(t, rec.stopped)
}

func TestEqual_VariableStopsTest(t *testing.T) {
	v := autodiff.NewVariable(tensor.Vector(1.0))

	rec := &recordingT{}
	ok := tensortest.Equal(rec, v, tensor.Vector(1.0))

	assert.False(t, ok)
	assert.True(t, rec.failed())
	assert.True(t, rec.stopped)
	assert.Contains(t, rec.messages[0], tensortest.ErrTypeMismatch.Error())

	rec = &recordingT{}
	tensortest.NotEqual(rec, tensor.Vector(1.0), v)
	assert.True(t, rec.stopped)
}

func TestEqual_NegativePrecisionStopsTest(t *testing.T) {
	rec := &recordingT{}
	assert.False(t, tensortest.EqualTol(rec, 1.0, 1.0, -1))
	assert.True(t, rec.stopped)
}

func TestEqual_WithoutFailNow(t *testing.T) {
	e := &errorfOnly{}
	v := autodiff.NewVariable(tensor.Vector(1.0))

	assert.NotPanics(t, func() {
		assert.False(t, tensortest.Equal(e, v, tensor.Vector(1.0)))
	})
	assert.True(t, e.failed)
}

func TestEqual_VariablePairComparesData(t *testing.T) {
	a := autodiff.NewVariable(tensor.Vector(1.0, 2.0))
	b := autodiff.NewVariable(tensor.Vector(1.0, 2.0+1e-7))

	rec := &recordingT{}
	assert.True(t, tensortest.Equal(rec, a, b))
	assert.False(t, rec.failed())

	rec = &recordingT{}
	assert.False(t, tensortest.Equal(rec, a, autodiff.NewVariable(tensor.Vector(1.0, 3.0))))
	assert.True(t, rec.failed())
	assert.False(t, rec.stopped, "a data mismatch between Variables must not stop the test")

	rec = &recordingT{}
	assert.True(t, tensortest.NotEqual(rec, a, autodiff.NewVariable(tensor.Vector(1.0, 3.0))))
	assert.False(t, rec.failed())
}
