// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quadratic

// =============================================================================
// Numeric Constants
// =============================================================================

const (
	// Epsilon is the threshold below which a magnitude is treated as zero.
	// It guards the leading coefficient, the discriminant boundary, and the
	// secant denominator.
	Epsilon = 1e-12

	// DefaultTolerance replaces a zero or NaN secant tolerance.
	DefaultTolerance = 1e-6

	// MinTolerance and MaxTolerance bound a normalized secant tolerance.
	MinTolerance = 1e-10
	MaxTolerance = 1e-1

	// MinIterations and MaxIterations bound the secant iteration cap.
	MinIterations = 1
	MaxIterations = 64

	// DefaultSampleCount is used when GenerateSamples receives n <= 0.
	DefaultSampleCount = 300

	// DefaultDomainMin and DefaultDomainMax replace non-finite domain bounds.
	DefaultDomainMin = -5.0
	DefaultDomainMax = 5.0
)

// =============================================================================
// Coefficients
// =============================================================================

// Coefficients defines f(x) = A·x² + B·x + C.
type Coefficients struct {
	A float64
	B float64
	C float64
}

// At evaluates the polynomial at x. Equivalent to Evaluate(c, x).
func (c Coefficients) At(x float64) float64 {
	return Evaluate(c, x)
}

// =============================================================================
// Quadratic Solution
// =============================================================================

// QuadraticStatus classifies the root structure of a quadratic.
type QuadraticStatus string

const (
	// StatusInvalid means the leading coefficient is zero or not finite.
	StatusInvalid QuadraticStatus = "invalid"

	// StatusTwoReal means the discriminant is positive beyond Epsilon.
	StatusTwoReal QuadraticStatus = "two-real"

	// StatusDoubleReal means |discriminant| <= Epsilon.
	StatusDoubleReal QuadraticStatus = "double-real"

	// StatusComplex means the discriminant is negative beyond Epsilon.
	StatusComplex QuadraticStatus = "complex"
)

// IsValid reports whether s is one of the four defined statuses.
func (s QuadraticStatus) IsValid() bool {
	switch s {
	case StatusInvalid, StatusTwoReal, StatusDoubleReal, StatusComplex:
		return true
	default:
		return false
	}
}

// RootKind distinguishes real roots from complex ones.
type RootKind string

const (
	RootReal    RootKind = "real"
	RootComplex RootKind = "complex"
)

// Root is one root of a quadratic.
//
// Kind is the discriminator: a RootReal value always has Imag == 0,
// a RootComplex value carries a non-zero imaginary part. Construct
// values with RealRoot or ComplexRoot.
type Root struct {
	Kind RootKind
	Real float64
	Imag float64
}

// RealRoot returns a real root with value v.
func RealRoot(v float64) Root {
	return Root{Kind: RootReal, Real: v}
}

// ComplexRoot returns a complex root re + im·i.
func ComplexRoot(re, im float64) Root {
	return Root{Kind: RootComplex, Real: re, Imag: im}
}

// IsReal reports whether the root lies on the real axis.
func (r Root) IsReal() bool {
	return r.Kind == RootReal
}

// Vertex is the extremum of the parabola.
type Vertex struct {
	X float64
	Y float64
}

// Solution is the closed-form analysis of a quadratic.
//
// Roots always has length 0 (Status == StatusInvalid) or 2.
// For StatusDoubleReal both entries are identical.
type Solution struct {
	Valid        bool
	Status       QuadraticStatus
	Discriminant float64
	Roots        []Root
	Vertex       Vertex

	// Message explains an invalid solution. Empty when Valid is true.
	Message string
}

// =============================================================================
// Secant Method
// =============================================================================

// SecantConfig holds the secant starting guesses and stopping rules.
type SecantConfig struct {
	X0            float64
	X1            float64
	Tolerance     float64
	MaxIterations int
}

// SecantIteration records a single secant step.
type SecantIteration struct {
	// Index is the 1-based step number.
	Index int

	XPrev float64
	XCurr float64
	XNext float64
	FPrev float64
	FCurr float64
	FNext float64

	// Error is |XNext-XCurr| / max(|XNext|, 1).
	Error float64

	// Slope is the chord slope between (XPrev, FPrev) and (XCurr, FCurr).
	Slope float64
}

// SecantStatus is the outcome of a secant run.
type SecantStatus string

const (
	// SecantIdle means no run has been requested. Held by callers only;
	// RunSecant never returns it.
	SecantIdle SecantStatus = "idle"

	// SecantInvalid means the coefficients do not form a quadratic.
	SecantInvalid SecantStatus = "invalid"

	// SecantConverged means the relative error met the tolerance.
	SecantConverged SecantStatus = "converged"

	// SecantMaxIter means the iteration cap was reached first.
	SecantMaxIter SecantStatus = "max_iter"

	// SecantDivisionZero means f(x_n) ≈ f(x_{n-1}) stopped the run.
	SecantDivisionZero SecantStatus = "division_zero"
)

// IsValid reports whether s is one of the five defined statuses.
func (s SecantStatus) IsValid() bool {
	switch s {
	case SecantIdle, SecantInvalid, SecantConverged, SecantMaxIter, SecantDivisionZero:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s is a status RunSecant can end in.
func (s SecantStatus) IsTerminal() bool {
	switch s {
	case SecantInvalid, SecantConverged, SecantMaxIter, SecantDivisionZero:
		return true
	default:
		return false
	}
}

// SecantResult is the full record of one secant run.
type SecantResult struct {
	Status     SecantStatus
	Iterations []SecantIteration

	// Approx is the final estimate. Only meaningful when HasApprox is true,
	// which holds for SecantConverged and SecantMaxIter.
	Approx    float64
	HasApprox bool

	Reason string
}

// =============================================================================
// Sampling
// =============================================================================

// Domain is a closed plotting range on the x axis.
type Domain struct {
	Min float64
	Max float64
}

// Point is a single (x, f(x)) sample.
type Point struct {
	X float64
	Y float64
}
