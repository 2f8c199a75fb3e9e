// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lab

import "github.com/AleutianAI/quadlab/pkg/quadratic"

// Describe returns a one-line description of the root structure.
func Describe(sol quadratic.Solution) string {
	switch sol.Status {
	case quadratic.StatusTwoReal:
		return "Two distinct real roots"
	case quadratic.StatusDoubleReal:
		return "Double real root"
	case quadratic.StatusComplex:
		return "Complex conjugate pair"
	default:
		return "Invalid equation"
	}
}

// SecantStatusLabel returns a short label for a secant status.
func SecantStatusLabel(s quadratic.SecantStatus) string {
	switch s {
	case quadratic.SecantConverged:
		return "Converged"
	case quadratic.SecantMaxIter:
		return "Iteration limit reached"
	case quadratic.SecantDivisionZero:
		return "Indeterminate division"
	case quadratic.SecantInvalid:
		return "Invalid input"
	default:
		return "Waiting for input"
	}
}
