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

	"github.com/AleutianAI/quadlab/pkg/quadratic"
)

const (
	// ChartSampleCount is the number of polynomial samples plotted per chart.
	ChartSampleCount = 320

	// domainPadRatio widens the plotted range beyond the points of interest.
	domainPadRatio = 0.35

	// minDomainSpan keeps tightly clustered points from producing a
	// degenerate chart.
	minDomainSpan = 2.0
)

// DeriveDomain picks a plotting range that frames every point of interest.
//
// Description:
//
//	Collects both initial guesses, the vertex abscissa, the real part of
//	every root and every x visited by the secant iterator. Non-finite
//	values are discarded. The range is then padded by 35% of its span,
//	where the span is never smaller than 2. With nothing to frame the
//	default domain [-5, 5] is returned.
//
// Inputs:
//
//	cfg   - The secant configuration (only X0 and X1 are read).
//	sol   - The closed-form solution.
//	iters - Secant iteration records, may be empty.
//
// Outputs:
//
//	quadratic.Domain - Min < Max always.
func DeriveDomain(cfg quadratic.SecantConfig, sol quadratic.Solution, iters []quadratic.SecantIteration) quadratic.Domain {
	bucket := make([]float64, 0, 3+len(sol.Roots)+3*len(iters))
	bucket = append(bucket, cfg.X0, cfg.X1, sol.Vertex.X)
	for _, r := range sol.Roots {
		bucket = append(bucket, r.Real)
	}
	for _, it := range iters {
		bucket = append(bucket, it.XPrev, it.XCurr, it.XNext)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range bucket {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		found = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if !found {
		return quadratic.Domain{Min: quadratic.DefaultDomainMin, Max: quadratic.DefaultDomainMax}
	}

	span := math.Max(hi-lo, minDomainSpan)
	pad := span * domainPadRatio
	return quadratic.Domain{Min: lo - pad, Max: hi + pad}
}
