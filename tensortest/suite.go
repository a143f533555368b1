// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensortest

import (
	"math/rand"

	"github.com/born-ml/tensorcheck/internal/compare"
	"github.com/born-ml/tensorcheck/internal/sparse"
	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/stretchr/testify/suite"
)

// DefaultSeed seeds the random source of every test case.
const DefaultSeed int64 = 0

// Suite is a testify suite with tolerant tensor assertions.
//
// Embed it in your own suite and run it with suite.Run:
//
//	type LayerSuite struct {
//	    tensortest.Suite
//	}
//
//	func TestLayer(t *testing.T) {
//	    suite.Run(t, &LayerSuite{Suite: tensortest.Suite{Precision: 1e-4}})
//	}
//
// Every test case starts from a random source seeded with Seed. A suite that
// defines its own SetupTest must call s.Suite.SetupTest().
type Suite struct {
	suite.Suite

	// Precision is the default tolerance. Zero selects DefaultPrecision;
	// use the *Tol assertions for an exact comparison.
	Precision float64

	// Seed is applied before each test case.
	Seed int64

	rng        *rand.Rand
	comparator *compare.Comparator
}

// SetupTest reseeds the random source before each test case.
func (s *Suite) SetupTest() {
	s.Reseed(s.Seed)
}

// Reseed replaces the random source with one seeded by seed.
func (s *Suite) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Rand returns the random source of the current test case.
func (s *Suite) Rand() *rand.Rand {
	if s.rng == nil {
		s.Reseed(s.Seed)
	}
	return s.rng
}

func (s *Suite) checker() *compare.Comparator {
	prec := s.Precision
	if prec == 0 {
		prec = DefaultPrecision
	}
	if s.comparator == nil || s.comparator.Precision() != prec {
		s.comparator = compare.New(compare.WithPrecision(prec))
	}
	return s.comparator
}

// AssertEqual asserts that x and y are equal within the suite precision.
func (s *Suite) AssertEqual(x, y any, msgAndArgs ...any) bool {
	s.T().Helper()
	return report(s.T(), s.checker().Equal(x, y), msgAndArgs...)
}

// AssertEqualTol asserts that x and y are equal within prec.
func (s *Suite) AssertEqualTol(x, y any, prec float64, msgAndArgs ...any) bool {
	s.T().Helper()
	return report(s.T(), s.checker().EqualTol(x, y, prec), msgAndArgs...)
}

// AssertNotEqual asserts that x and y differ by at least the suite precision.
func (s *Suite) AssertNotEqual(x, y any, msgAndArgs ...any) bool {
	s.T().Helper()
	return report(s.T(), s.checker().NotEqual(x, y), msgAndArgs...)
}

// AssertNotEqualTol asserts that x and y differ by at least prec.
func (s *Suite) AssertNotEqualTol(x, y any, prec float64, msgAndArgs ...any) bool {
	s.T().Helper()
	return report(s.T(), s.checker().NotEqualTol(x, y, prec), msgAndArgs...)
}

// SafeCoalesce coalesces t and checks the result: it must be canonical and
// must densify to the same tensor as the input.
func (s *Suite) SafeCoalesce(t *tensor.Sparse) *tensor.Sparse {
	s.T().Helper()
	backend := s.checker().Backend()
	c := sparse.Coalesce(t, backend)

	s.True(sparse.IsCoalesced(c), "coalesced tensor is not canonical: %v", c)
	report(s.T(), s.checker().Equal(sparse.ToDense(c, backend), sparse.ToDense(t, backend)),
		"coalesce changed the tensor contents")
	return c
}
