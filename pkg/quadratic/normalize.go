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

import "math"

// NormalizeSecant sanitizes raw user input before it reaches RunSecant.
//
// Description:
//
//	Applies the user-facing bounds, which are tighter than the
//	iterator's own clamp:
//
//	    X0, X1        non-finite -> 0
//	    Tolerance     0 / non-finite -> DefaultTolerance, then [1e-10, 1e-1]
//	    MaxIterations rounded, then [1, 64]
//
// Inputs:
//
//	raw - Configuration as entered by the user.
//
// Outputs:
//
//	SecantConfig - A configuration safe to pass to RunSecant.
func NormalizeSecant(raw SecantConfig) SecantConfig {
	return SecantConfig{
		X0:            finiteOr(raw.X0, 0),
		X1:            finiteOr(raw.X1, 0),
		Tolerance:     normalizeTolerance(raw.Tolerance),
		MaxIterations: clampIterations(float64(raw.MaxIterations)),
	}
}

// NormalizeIterations is NormalizeSecant's cap rule for callers that hold
// the iteration count as a float (CLI flags, JSON numbers).
func NormalizeIterations(n float64) int {
	return clampIterations(n)
}

func normalizeTolerance(tol float64) float64 {
	if tol == 0 || !isFinite(tol) {
		tol = DefaultTolerance
	}
	return math.Min(MaxTolerance, math.Max(MinTolerance, tol))
}

func finiteOr(v, fallback float64) float64 {
	if isFinite(v) {
		return v
	}
	return fallback
}
