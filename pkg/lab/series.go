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

// Series keys used by ChartSeries.
const (
	SeriesPolynomial = "polynomial"
	SeriesSecant     = "secant"
)

// SeriesPoint is one secant estimate as plotted on the chart.
type SeriesPoint struct {
	X         float64
	Y         float64
	Iteration int
	Error     float64
}

// Series is a named list of points. It carries no styling.
type Series struct {
	Key    string
	Points []SeriesPoint
}

// SecantSeries maps each iteration to the point (xNext, f(xNext)).
func SecantSeries(iters []quadratic.SecantIteration) []SeriesPoint {
	out := make([]SeriesPoint, len(iters))
	for i, it := range iters {
		out[i] = SeriesPoint{X: it.XNext, Y: it.FNext, Iteration: it.Index, Error: it.Error}
	}
	return out
}

// ChartSeries pairs the sampled curve with the secant estimates.
//
// The polynomial series is always first; the secant series is present
// even when empty so renderers can rely on both keys.
func ChartSeries(poly []quadratic.Point, secant []SeriesPoint) []Series {
	curve := make([]SeriesPoint, len(poly))
	for i, p := range poly {
		curve[i] = SeriesPoint{X: p.X, Y: p.Y, Iteration: i}
	}
	if secant == nil {
		secant = []SeriesPoint{}
	}
	return []Series{
		{Key: SeriesPolynomial, Points: curve},
		{Key: SeriesSecant, Points: secant},
	}
}

// IterationDelta is the absolute step |xNext - xCurr| of one iteration.
func IterationDelta(it quadratic.SecantIteration) float64 {
	return math.Abs(it.XNext - it.XCurr)
}
