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

// invalidQuadraticMessage is shown when the leading coefficient fails the guard.
const invalidQuadraticMessage = "Coefficient a must be non-zero for the equation to be quadratic."

// Solve computes the discriminant, vertex, and roots of a quadratic.
//
// Description:
//
//	Applies the closed-form quadratic formula. The discriminant is
//	classified with a symmetric Epsilon band: |d| <= Epsilon is always
//	StatusDoubleReal, even when rounding leaves d slightly non-zero.
//
// Inputs:
//
//	c - The polynomial coefficients.
//
// Outputs:
//
//	Solution - Always populated. Invalid coefficients yield Valid=false,
//	           Status=StatusInvalid, NaN discriminant and vertex, no roots,
//	           and an explanatory Message.
//
// Example:
//
//	sol := quadratic.Solve(quadratic.Coefficients{A: 1, B: -3, C: -4})
//	// sol.Status == StatusTwoReal, roots 4 and -1
func Solve(c Coefficients) Solution {
	if !ValidateCoefficients(c).OK() {
		return Solution{
			Valid:        false,
			Status:       StatusInvalid,
			Discriminant: math.NaN(),
			Roots:        []Root{},
			Vertex:       Vertex{X: math.NaN(), Y: math.NaN()},
			Message:      invalidQuadraticMessage,
		}
	}

	discriminant := c.B*c.B - 4*c.A*c.C
	twoA := 2 * c.A
	vertexX := -c.B / twoA
	vertex := Vertex{X: vertexX, Y: Evaluate(c, vertexX)}

	switch {
	case discriminant > Epsilon:
		sqrtD := math.Sqrt(discriminant)
		return Solution{
			Valid:        true,
			Status:       StatusTwoReal,
			Discriminant: discriminant,
			Roots: []Root{
				RealRoot((-c.B + sqrtD) / twoA),
				RealRoot((-c.B - sqrtD) / twoA),
			},
			Vertex: vertex,
		}

	case math.Abs(discriminant) <= Epsilon:
		root := -c.B / twoA
		return Solution{
			Valid:        true,
			Status:       StatusDoubleReal,
			Discriminant: discriminant,
			Roots:        []Root{RealRoot(root), RealRoot(root)},
			Vertex:       vertex,
		}

	default:
		imag := math.Sqrt(-discriminant) / math.Abs(twoA)
		realPart := -c.B / twoA
		return Solution{
			Valid:        true,
			Status:       StatusComplex,
			Discriminant: discriminant,
			Roots: []Root{
				ComplexRoot(realPart, imag),
				ComplexRoot(realPart, -imag),
			},
			Vertex: vertex,
		}
	}
}
