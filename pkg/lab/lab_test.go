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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/quadlab/pkg/quadratic"
)

// =============================================================================
// Domain Tests
// =============================================================================

func TestDeriveDomain_FramesPointsOfInterest(t *testing.T) {
	c := quadratic.Coefficients{A: 1, B: -3, C: -4}
	cfg := quadratic.SecantConfig{X0: -2, X1: 4, Tolerance: 1e-6, MaxIterations: 18}
	sol := quadratic.Solve(c)
	res := quadratic.RunSecant(c, cfg)

	d := DeriveDomain(cfg, sol, res.Iterations)

	// Points span [-2, 4]: span 6, pad 2.1.
	assert.InDelta(t, -4.1, d.Min, 1e-12)
	assert.InDelta(t, 6.1, d.Max, 1e-12)
}

func TestDeriveDomain_EmptyBucketUsesDefault(t *testing.T) {
	cfg := quadratic.SecantConfig{X0: math.NaN(), X1: math.Inf(1)}
	sol := quadratic.Solve(quadratic.Coefficients{A: 0})

	d := DeriveDomain(cfg, sol, nil)
	assert.Equal(t, quadratic.Domain{Min: -5, Max: 5}, d)
}

func TestDeriveDomain_MinimumSpan(t *testing.T) {
	cfg := quadratic.SecantConfig{X0: 1, X1: 1}
	sol := quadratic.Solve(quadratic.Coefficients{A: 0})

	d := DeriveDomain(cfg, sol, nil)
	assert.InDelta(t, 0.3, d.Min, 1e-12)
	assert.InDelta(t, 1.7, d.Max, 1e-12)
}

func TestDeriveDomain_IgnoresNonFiniteIterates(t *testing.T) {
	cfg := quadratic.SecantConfig{X0: 0, X1: 2}
	sol := quadratic.Solve(quadratic.Coefficients{A: 0})
	iters := []quadratic.SecantIteration{{XPrev: 0, XCurr: 2, XNext: math.Inf(1)}}

	d := DeriveDomain(cfg, sol, iters)
	assert.InDelta(t, -0.7, d.Min, 1e-12)
	assert.InDelta(t, 2.7, d.Max, 1e-12)
}

// =============================================================================
// Series Tests
// =============================================================================

func TestSecantSeries(t *testing.T) {
	iters := []quadratic.SecantIteration{
		{Index: 1, XCurr: 2, XNext: 1.5, FNext: -0.25, Error: 0.33},
		{Index: 2, XCurr: 1.5, XNext: 1.4, FNext: -0.04, Error: 0.07},
	}
	got := SecantSeries(iters)

	require.Len(t, got, 2)
	assert.Equal(t, SeriesPoint{X: 1.5, Y: -0.25, Iteration: 1, Error: 0.33}, got[0])
	assert.Equal(t, 2, got[1].Iteration)
	assert.InDelta(t, 0.5, IterationDelta(iters[0]), 1e-15)
}

func TestChartSeries_AlwaysHasBothKeys(t *testing.T) {
	poly := quadratic.GenerateSamples(quadratic.Coefficients{A: 1}, quadratic.Domain{Min: -1, Max: 1}, 3)
	series := ChartSeries(poly, nil)

	require.Len(t, series, 2)
	assert.Equal(t, SeriesPolynomial, series[0].Key)
	assert.Len(t, series[0].Points, 3)
	assert.Equal(t, SeriesSecant, series[1].Key)
	assert.NotNil(t, series[1].Points)
	assert.Empty(t, series[1].Points)
}

// =============================================================================
// Describe / LaTeX Tests
// =============================================================================

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Two distinct real roots", Describe(quadratic.Solve(quadratic.Coefficients{A: 1, B: -3, C: -4})))
	assert.Equal(t, "Double real root", Describe(quadratic.Solve(quadratic.Coefficients{A: 1, B: -2, C: 1})))
	assert.Equal(t, "Complex conjugate pair", Describe(quadratic.Solve(quadratic.Coefficients{A: 2, B: 4, C: 8})))
	assert.Equal(t, "Invalid equation", Describe(quadratic.Solve(quadratic.Coefficients{})))
}

func TestSecantStatusLabel(t *testing.T) {
	tests := []struct {
		status quadratic.SecantStatus
		label  string
	}{
		{quadratic.SecantConverged, "Converged"},
		{quadratic.SecantMaxIter, "Iteration limit reached"},
		{quadratic.SecantDivisionZero, "Indeterminate division"},
		{quadratic.SecantInvalid, "Invalid input"},
		{quadratic.SecantIdle, "Waiting for input"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.label, SecantStatusLabel(tt.status))
		})
	}
}

func TestPolynomialLatex(t *testing.T) {
	tests := []struct {
		name string
		c    quadratic.Coefficients
		want string
	}{
		{
			name: "negative terms",
			c:    quadratic.Coefficients{A: 1, B: -3, C: -4},
			want: `\displaystyle f(x) = 1.000x^{2} -\,3.000x -\,4.000`,
		},
		{
			name: "positive terms",
			c:    quadratic.Coefficients{A: 2, B: 4, C: 8},
			want: `\displaystyle f(x) = 2.000x^{2} +\,4.000x +\,8.000`,
		},
		{
			name: "non-finite renders as zero",
			c:    quadratic.Coefficients{A: math.NaN(), B: math.Inf(-1), C: 0.12345},
			want: `\displaystyle f(x) = 0x^{2} -\,0x +\,0.123`,
		},
		{
			name: "nan and positive infinity keep raw sign",
			c:    quadratic.Coefficients{A: 1, B: math.NaN(), C: math.Inf(1)},
			want: `\displaystyle f(x) = 1.000x^{2} -\,0x +\,0`,
		},
		{
			name: "negative zero reads as plus",
			c:    quadratic.Coefficients{A: 1, B: math.Copysign(0, -1), C: 0},
			want: `\displaystyle f(x) = 1.000x^{2} +\,0.000x +\,0.000`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolynomialLatex(tt.c))
		})
	}
}

// =============================================================================
// Formatting Tests
// =============================================================================

func TestFormatter_English(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)

	assert.Equal(t, "en", f.Locale())
	assert.Equal(t, "1,234.57", f.Number(1234.5678, 2))
	assert.Equal(t, "0.5", f.Number(0.5, 6))
	assert.Equal(t, "25.0000 %", f.Percent(0.25))
	assert.NotEmpty(t, f.Scientific(12345))
	assert.Equal(t, "1 + 2i", f.Root(quadratic.ComplexRoot(1, 2)))
	assert.Equal(t, "1 - 2i", f.Root(quadratic.ComplexRoot(1, -2)))
	assert.Equal(t, "3", f.Root(quadratic.ComplexRoot(3, 1e-12)))
}

func TestFormat_DefaultLocaleIsSpanish(t *testing.T) {
	assert.Equal(t, "0,5", FormatNumber(0.5, 6))
	assert.Equal(t, "es-ES", defaultFormatter.Locale())
}

func TestFormat_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, Placeholder, FormatNumber(v, 6))
		assert.Equal(t, Placeholder, FormatPercent(v))
		assert.Equal(t, Placeholder, FormatScientific(v))
		assert.Equal(t, Placeholder, FormatRoot(quadratic.RealRoot(v)))
	}
}

func TestNewFormatter_Errors(t *testing.T) {
	_, err := NewFormatter("not a locale!!")
	assert.ErrorIs(t, err, ErrUnknownLocale)

	f, err := NewFormatter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, f.Locale())
}
