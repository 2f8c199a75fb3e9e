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

import (
	"fmt"
	"math"
)

const (
	reasonInvalid      = "The secant method needs a valid quadratic equation (a ≠ 0)."
	reasonDivisionZero = "The secant method stopped because f(x_n) ≈ f(x_{n-1}), which would divide by zero."
	reasonMaxIter      = "Reached the maximum number of iterations without meeting the tolerance."
	reasonIdle         = "Waiting for input."
)

// IdleSecant returns the result a caller holds before any run is requested.
func IdleSecant() SecantResult {
	return SecantResult{
		Status:     SecantIdle,
		Iterations: []SecantIteration{},
		Reason:     reasonIdle,
	}
}

// RunSecant approximates a root of the quadratic with the secant method.
//
// Description:
//
//	Starting from X0 and X1, repeatedly replaces the older point with the
//	x-intercept of the chord through the last two points:
//
//	    x_{n+1} = x_n - f(x_n)·(x_n - x_{n-1}) / (f(x_n) - f(x_{n-1}))
//
//	The run ends in exactly one terminal status:
//
//	    SecantInvalid      - coefficients failed ValidateCoefficients
//	    SecantDivisionZero - |f(x_n) - f(x_{n-1})| < Epsilon
//	    SecantConverged    - relative error <= tolerance
//	    SecantMaxIter      - iteration cap exhausted
//
//	The configuration is re-clamped here even if the caller already
//	normalized it: tolerance becomes max(Epsilon, |tol|) with 0 and NaN
//	mapped to DefaultTolerance, and the cap is rounded into [1, 64].
//
// Inputs:
//
//	c   - The polynomial coefficients.
//	cfg - Starting guesses and stopping rules.
//
// Outputs:
//
//	SecantResult - Iterations accumulated up to the stopping point, the
//	               final estimate (converged / max_iter only), and a reason.
func RunSecant(c Coefficients, cfg SecantConfig) SecantResult {
	if !ValidateCoefficients(c).OK() {
		return SecantResult{
			Status:     SecantInvalid,
			Iterations: []SecantIteration{},
			Reason:     reasonInvalid,
		}
	}

	tolerance := iteratorTolerance(cfg.Tolerance)
	maxIterations := clampIterations(float64(cfg.MaxIterations))

	xPrev, xCurr := cfg.X0, cfg.X1
	fPrev, fCurr := Evaluate(c, xPrev), Evaluate(c, xCurr)

	iterations := make([]SecantIteration, 0, maxIterations)

	for index := 1; index <= maxIterations; index++ {
		denominator := fCurr - fPrev
		if math.Abs(denominator) < Epsilon {
			return SecantResult{
				Status:     SecantDivisionZero,
				Iterations: iterations,
				Reason:     reasonDivisionZero,
			}
		}

		xNext := xCurr - fCurr*(xCurr-xPrev)/denominator
		fNext := Evaluate(c, xNext)
		relErr := math.Abs(xNext-xCurr) / math.Max(math.Abs(xNext), 1)

		iterations = append(iterations, SecantIteration{
			Index: index,
			XPrev: xPrev,
			XCurr: xCurr,
			XNext: xNext,
			FPrev: fPrev,
			FCurr: fCurr,
			FNext: fNext,
			Error: relErr,
			Slope: chordSlope(xPrev, xCurr, fPrev, fCurr),
		})

		if relErr <= tolerance {
			return SecantResult{
				Status:     SecantConverged,
				Iterations: iterations,
				Approx:     xNext,
				HasApprox:  true,
				Reason:     fmt.Sprintf("Tolerance reached in %d iterations.", index),
			}
		}

		xPrev, fPrev = xCurr, fCurr
		xCurr, fCurr = xNext, fNext
	}

	// maxIterations >= 1 and every loop pass either returns or appends.
	last := iterations[len(iterations)-1]
	return SecantResult{
		Status:     SecantMaxIter,
		Iterations: iterations,
		Approx:     last.XNext,
		HasApprox:  true,
		Reason:     reasonMaxIter,
	}
}

// chordSlope returns (fCurr-fPrev)/(xCurr-xPrev), substituting Epsilon
// for an exactly zero x difference.
func chordSlope(xPrev, xCurr, fPrev, fCurr float64) float64 {
	dx := xCurr - xPrev
	if dx == 0 {
		dx = Epsilon
	}
	return (fCurr - fPrev) / dx
}

// iteratorTolerance applies the iterator's own tolerance floor.
func iteratorTolerance(tol float64) float64 {
	abs := math.Abs(tol)
	if abs == 0 || math.IsNaN(abs) {
		abs = DefaultTolerance
	}
	return math.Max(Epsilon, abs)
}

// clampIterations rounds n and clamps it into [MinIterations, MaxIterations].
// Zero and NaN map to MinIterations.
func clampIterations(n float64) int {
	if n == 0 || math.IsNaN(n) {
		return MinIterations
	}
	r := math.Round(n)
	if r < MinIterations {
		return MinIterations
	}
	if r > MaxIterations {
		return MaxIterations
	}
	return int(r)
}
