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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSamples_CountAndEndpoints(t *testing.T) {
	c := Coefficients{A: 1, B: -3, C: -4}
	points := GenerateSamples(c, Domain{Min: -5, Max: 5}, 320)

	require.Len(t, points, 320)
	assert.Equal(t, -5.0, points[0].X)
	assert.InDelta(t, 5.0, points[len(points)-1].X, 1e-9)

	for _, p := range points {
		assert.Equal(t, Evaluate(c, p.X), p.Y)
	}
}

func TestGenerateSamples_UniformStep(t *testing.T) {
	points := GenerateSamples(Coefficients{A: 1}, Domain{Min: 0, Max: 10}, 11)
	require.Len(t, points, 11)
	for i, p := range points {
		assert.InDelta(t, float64(i), p.X, 1e-12)
	}
}

func TestGenerateSamples_DefaultCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		assert.Len(t, GenerateSamples(Coefficients{A: 1}, Domain{Min: -1, Max: 1}, n), DefaultSampleCount)
	}
}

func TestGenerateSamples_SinglePoint(t *testing.T) {
	points := GenerateSamples(Coefficients{A: 1, C: 2}, Domain{Min: 3, Max: 7}, 1)
	require.Len(t, points, 1)
	assert.Equal(t, Point{X: 3, Y: 11}, points[0])
}

func TestGenerateSamples_SanitizesDomain(t *testing.T) {
	c := Coefficients{A: 1}

	tests := []struct {
		name    string
		domain  Domain
		wantMin float64
		wantMax float64
	}{
		{"nan bounds", Domain{Min: math.NaN(), Max: math.NaN()}, -5, 5},
		{"infinite bounds", Domain{Min: math.Inf(-1), Max: math.Inf(1)}, -5, 5},
		{"nan min only", Domain{Min: math.NaN(), Max: 2}, -5, 2},
		{"zero-length", Domain{Min: 2, Max: 2}, 1, 3},
		{"zero-length at origin", Domain{Min: 0, Max: 0}, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateSamples(c, tt.domain, 5)
			require.Len(t, points, 5)
			assert.Equal(t, tt.wantMin, points[0].X)
			assert.InDelta(t, tt.wantMax, points[4].X, 1e-12)
			assert.Equal(t, Domain{Min: tt.wantMin, Max: tt.wantMax}, tt.domain.Sanitize())
		})
	}
}

func TestGenerateSamples_Idempotent(t *testing.T) {
	c := Coefficients{A: -0.5, B: 2, C: 1}
	d := Domain{Min: -3.3, Max: 8.1}
	assert.Equal(t, GenerateSamples(c, d, 300), GenerateSamples(c, d, 300))
}

func TestNormalizeSecant(t *testing.T) {
	tests := []struct {
		name string
		raw  SecantConfig
		want SecantConfig
	}{
		{
			name: "already in range",
			raw:  SecantConfig{X0: -2, X1: 4, Tolerance: 1e-6, MaxIterations: 18},
			want: SecantConfig{X0: -2, X1: 4, Tolerance: 1e-6, MaxIterations: 18},
		},
		{
			name: "non-finite guesses become zero",
			raw:  SecantConfig{X0: math.NaN(), X1: math.Inf(1), Tolerance: 1e-6, MaxIterations: 5},
			want: SecantConfig{X0: 0, X1: 0, Tolerance: 1e-6, MaxIterations: 5},
		},
		{
			name: "tolerance clamped high",
			raw:  SecantConfig{Tolerance: 0.5, MaxIterations: 5},
			want: SecantConfig{Tolerance: MaxTolerance, MaxIterations: 5},
		},
		{
			name: "tolerance clamped low",
			raw:  SecantConfig{Tolerance: 1e-15, MaxIterations: 5},
			want: SecantConfig{Tolerance: MinTolerance, MaxIterations: 5},
		},
		{
			name: "negative tolerance clamped low",
			raw:  SecantConfig{Tolerance: -0.01, MaxIterations: 5},
			want: SecantConfig{Tolerance: MinTolerance, MaxIterations: 5},
		},
		{
			name: "zero tolerance uses default",
			raw:  SecantConfig{Tolerance: 0, MaxIterations: 5},
			want: SecantConfig{Tolerance: DefaultTolerance, MaxIterations: 5},
		},
		{
			name: "nan tolerance uses default",
			raw:  SecantConfig{Tolerance: math.NaN(), MaxIterations: 5},
			want: SecantConfig{Tolerance: DefaultTolerance, MaxIterations: 5},
		},
		{
			name: "iterations clamped",
			raw:  SecantConfig{Tolerance: 1e-6, MaxIterations: 500},
			want: SecantConfig{Tolerance: 1e-6, MaxIterations: MaxIterations},
		},
		{
			name: "zero iterations becomes one",
			raw:  SecantConfig{Tolerance: 1e-6, MaxIterations: 0},
			want: SecantConfig{Tolerance: 1e-6, MaxIterations: MinIterations},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSecant(tt.raw))
		})
	}
}

func TestNormalizeIterations(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{17.4, 17},
		{17.5, 18},
		{0, 1},
		{-4, 1},
		{math.NaN(), 1},
		{math.Inf(1), 64},
		{math.Inf(-1), 1},
		{64.4, 64},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIterations(tt.in), "input %v", tt.in)
	}
}
