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

import (
	"fmt"
	"math"
	"strconv"

	"github.com/AleutianAI/quadlab/pkg/quadratic"
)

const (
	// GeneralFormula is the quadratic formula in display mode.
	GeneralFormula = `\displaystyle x = \frac{-b \pm \sqrt{b^{2}-4ac}}{2a}`

	// SecantFormula is the secant update rule in display mode.
	SecantFormula = `\displaystyle x_{n+1} = x_n - f(x_n) \cdot \frac{x_n - x_{n-1}}{f(x_n) - f(x_{n-1})}`
)

// PolynomialLatex renders f(x) with three decimals per coefficient.
//
// The sign of B and C is pulled out of the number so the output reads
// "-\,3.000x" rather than "+ -3.000x". Non-finite magnitudes print as a
// bare 0; the sign still comes from the raw value, so NaN reads "-\,0".
func PolynomialLatex(c quadratic.Coefficients) string {
	return fmt.Sprintf(`\displaystyle f(x) = %sx^{2} %s\,%sx %s\,%s`,
		latexNumber(c.A),
		latexSign(c.B), latexNumber(math.Abs(c.B)),
		latexSign(c.C), latexNumber(math.Abs(c.C)))
}

func latexNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// latexSign is "+" only for v >= 0, which excludes NaN.
func latexSign(v float64) string {
	if v >= 0 {
		return "+"
	}
	return "-"
}
