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
	"errors"
	"math"
)

// Sentinel errors for coefficient validation.
var (
	// ErrLeadingNotFinite indicates a is NaN or ±Inf.
	ErrLeadingNotFinite = errors.New("leading coefficient is not finite")

	// ErrDegenerate indicates |a| < Epsilon, so the equation is not quadratic.
	ErrDegenerate = errors.New("leading coefficient is zero")
)

// OutcomeKind tags a ValidationOutcome.
type OutcomeKind int

const (
	// OutcomeValid means the coefficients define a quadratic.
	OutcomeValid OutcomeKind = iota

	// OutcomeNotFinite means a is NaN or infinite.
	OutcomeNotFinite

	// OutcomeDegenerate means a is finite but within Epsilon of zero.
	OutcomeDegenerate
)

// ValidationOutcome is the result of the shared coefficient guard.
//
// Solve and RunSecant both consult it before doing any arithmetic so
// the two algorithms can never disagree about what a valid quadratic is.
type ValidationOutcome struct {
	Kind OutcomeKind
}

// OK reports whether the coefficients passed the guard.
func (v ValidationOutcome) OK() bool {
	return v.Kind == OutcomeValid
}

// Err returns the matching sentinel error, or nil when valid.
func (v ValidationOutcome) Err() error {
	switch v.Kind {
	case OutcomeNotFinite:
		return ErrLeadingNotFinite
	case OutcomeDegenerate:
		return ErrDegenerate
	default:
		return nil
	}
}

// ValidateCoefficients checks that c.A is finite and |c.A| >= Epsilon.
//
// B and C are not inspected; non-finite values there propagate through
// the arithmetic as IEEE-754 prescribes.
func ValidateCoefficients(c Coefficients) ValidationOutcome {
	if math.IsNaN(c.A) || math.IsInf(c.A, 0) {
		return ValidationOutcome{Kind: OutcomeNotFinite}
	}
	if math.Abs(c.A) < Epsilon {
		return ValidationOutcome{Kind: OutcomeDegenerate}
	}
	return ValidationOutcome{Kind: OutcomeValid}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
