// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package quadratic is the numeric core of quadlab.
//
// It provides three pure operations over f(x) = ax² + bx + c:
//
//   - Solve: closed-form roots, discriminant, and vertex
//   - RunSecant: iterative root approximation by the secant method
//   - GenerateSamples: evenly spaced (x, f(x)) pairs for plotting
//
// # Error Model
//
// Numeric outcomes never surface as Go errors. Degenerate coefficients,
// a vanishing secant slope, or an exhausted iteration cap are reported
// through the Status field of the returned value together with a
// human-readable Message or Reason suitable for direct display:
//
//	sol := quadratic.Solve(quadratic.Coefficients{A: 1, B: -3, C: -4})
//	if !sol.Valid {
//	    fmt.Println(sol.Message)
//	}
//
//	res := quadratic.RunSecant(coeffs, quadratic.NormalizeSecant(raw))
//	switch res.Status {
//	case quadratic.SecantConverged:
//	    fmt.Println("root ≈", res.Approx)
//	case quadratic.SecantMaxIter, quadratic.SecantDivisionZero, quadratic.SecantInvalid:
//	    fmt.Println(res.Reason)
//	}
//
// # Thread Safety
//
// Every function in this package is pure and holds no shared state.
// Concurrent calls need no synchronization, and repeated calls with
// identical inputs return identical outputs.
package quadratic
