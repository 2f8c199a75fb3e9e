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

// GenerateSamples evaluates the polynomial at n evenly spaced points.
//
// Description:
//
//	Sanitizes the domain first: non-finite bounds fall back to
//	DefaultDomainMin / DefaultDomainMax, and a zero-length domain is
//	widened by ±1. The first point sits on Min and, for n > 1, the last
//	on Max (up to floating-point rounding of the step).
//
// Inputs:
//
//	c - The polynomial coefficients.
//	d - The plotting range. Min > Max is accepted and sampled right to left.
//	n - Number of samples. n <= 0 means DefaultSampleCount.
//
// Outputs:
//
//	[]Point - Exactly n points (or DefaultSampleCount), ordered by index.
func GenerateSamples(c Coefficients, d Domain, n int) []Point {
	if n <= 0 {
		n = DefaultSampleCount
	}

	d = d.Sanitize()
	lo, hi := d.Min, d.Max

	step := (hi - lo) / float64(max(n-1, 1))

	points := make([]Point, n)
	for i := range points {
		x := lo + step*float64(i)
		points[i] = Point{X: x, Y: Evaluate(c, x)}
	}
	return points
}

// Sanitize returns the range GenerateSamples actually samples: non-finite
// bounds become DefaultDomainMin / DefaultDomainMax and a zero-length
// range is widened by ±1.
func (d Domain) Sanitize() Domain {
	lo := finiteOr(d.Min, DefaultDomainMin)
	hi := finiteOr(d.Max, DefaultDomainMax)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return Domain{Min: lo, Max: hi}
}
