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
	"github.com/AleutianAI/quadlab/pkg/quadratic"
)

// =============================================================================
// Report Types
// =============================================================================

// RootReport is one root with its display string.
type RootReport struct {
	Kind    string `json:"kind" yaml:"kind"`
	Real    Float  `json:"real" yaml:"real"`
	Imag    Float  `json:"imag" yaml:"imag"`
	Display string `json:"display" yaml:"display"`
}

// EquationReport echoes the analyzed coefficients.
type EquationReport struct {
	A Float `json:"a" yaml:"a"`
	B Float `json:"b" yaml:"b"`
	C Float `json:"c" yaml:"c"`
}

// PointReport is an (x, y) pair.
type PointReport struct {
	X Float `json:"x" yaml:"x"`
	Y Float `json:"y" yaml:"y"`
}

// SolutionReport is the serializable form of quadratic.Solution.
type SolutionReport struct {
	Valid        bool         `json:"valid" yaml:"valid"`
	Status       string       `json:"status" yaml:"status"`
	Description  string       `json:"description" yaml:"description"`
	Discriminant Float        `json:"discriminant" yaml:"discriminant"`
	Roots        []RootReport `json:"roots" yaml:"roots"`
	Vertex       PointReport  `json:"vertex" yaml:"vertex"`
	Message      string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// IterationReport is the serializable form of quadratic.SecantIteration.
type IterationReport struct {
	Index int   `json:"index" yaml:"index"`
	XPrev Float `json:"x_prev" yaml:"x_prev"`
	XCurr Float `json:"x_curr" yaml:"x_curr"`
	XNext Float `json:"x_next" yaml:"x_next"`
	FPrev Float `json:"f_prev" yaml:"f_prev"`
	FCurr Float `json:"f_curr" yaml:"f_curr"`
	FNext Float `json:"f_next" yaml:"f_next"`
	Error Float `json:"error" yaml:"error"`
	Slope Float `json:"slope" yaml:"slope"`
	Delta Float `json:"delta" yaml:"delta"`
}

// SecantReport is the serializable form of quadratic.SecantResult.
//
// Approx is omitted unless the run produced an estimate.
type SecantReport struct {
	Status     string            `json:"status" yaml:"status"`
	Label      string            `json:"label" yaml:"label"`
	Reason     string            `json:"reason" yaml:"reason"`
	Approx     *Float            `json:"approx,omitempty" yaml:"approx,omitempty"`
	Config     SecantParams      `json:"config" yaml:"config"`
	Iterations []IterationReport `json:"iterations" yaml:"iterations"`
}

// DomainReport is the plotting range.
type DomainReport struct {
	Min Float `json:"min" yaml:"min"`
	Max Float `json:"max" yaml:"max"`
}

// SamplesReport is a sampled curve over a domain.
type SamplesReport struct {
	Domain DomainReport  `json:"domain" yaml:"domain"`
	Count  int           `json:"count" yaml:"count"`
	Points []PointReport `json:"points" yaml:"points"`
}

// SeriesPointReport is one chart point.
type SeriesPointReport struct {
	X         Float `json:"x" yaml:"x"`
	Y         Float `json:"y" yaml:"y"`
	Iteration int   `json:"iteration" yaml:"iteration"`
	Error     Float `json:"error" yaml:"error"`
}

// SeriesReport is one named chart series.
type SeriesReport struct {
	Key    string              `json:"key" yaml:"key"`
	Points []SeriesPointReport `json:"points" yaml:"points"`
}

// LatexReport holds the rendered formulas.
type LatexReport struct {
	Polynomial string `json:"polynomial" yaml:"polynomial"`
	General    string `json:"general" yaml:"general"`
	Secant     string `json:"secant" yaml:"secant"`
}

// Report is everything a presentation layer needs for one problem.
type Report struct {
	Equation EquationReport `json:"equation" yaml:"equation"`
	Locale   string         `json:"locale" yaml:"locale"`
	Solution SolutionReport `json:"solution" yaml:"solution"`
	Secant   SecantReport   `json:"secant" yaml:"secant"`
	Domain   DomainReport   `json:"domain" yaml:"domain"`
	Chart    []SeriesReport `json:"chart" yaml:"chart"`
	Latex    LatexReport    `json:"latex" yaml:"latex"`
}

// =============================================================================
// Builders
// =============================================================================

// NewSolutionReport converts a solution, formatting roots with f.
// A nil f uses the default locale.
func NewSolutionReport(sol quadratic.Solution, f *Formatter) SolutionReport {
	if f == nil {
		f = defaultFormatter
	}
	roots := make([]RootReport, len(sol.Roots))
	for i, r := range sol.Roots {
		roots[i] = RootReport{
			Kind:    string(r.Kind),
			Real:    Float(r.Real),
			Imag:    Float(r.Imag),
			Display: f.Root(r),
		}
	}
	return SolutionReport{
		Valid:        sol.Valid,
		Status:       string(sol.Status),
		Description:  Describe(sol),
		Discriminant: Float(sol.Discriminant),
		Roots:        roots,
		Vertex:       PointReport{X: Float(sol.Vertex.X), Y: Float(sol.Vertex.Y)},
		Message:      sol.Message,
	}
}

// NewSecantReport converts a secant result along with the configuration
// that produced it.
func NewSecantReport(res quadratic.SecantResult, cfg quadratic.SecantConfig) SecantReport {
	iters := make([]IterationReport, len(res.Iterations))
	for i, it := range res.Iterations {
		iters[i] = IterationReport{
			Index: it.Index,
			XPrev: Float(it.XPrev),
			XCurr: Float(it.XCurr),
			XNext: Float(it.XNext),
			FPrev: Float(it.FPrev),
			FCurr: Float(it.FCurr),
			FNext: Float(it.FNext),
			Error: Float(it.Error),
			Slope: Float(it.Slope),
			Delta: Float(IterationDelta(it)),
		}
	}
	rep := SecantReport{
		Status:     string(res.Status),
		Label:      SecantStatusLabel(res.Status),
		Reason:     res.Reason,
		Config:     SecantParamsFrom(cfg),
		Iterations: iters,
	}
	if res.HasApprox {
		approx := Float(res.Approx)
		rep.Approx = &approx
	}
	return rep
}

// NewSamplesReport converts a sampled curve.
func NewSamplesReport(d quadratic.Domain, points []quadratic.Point) SamplesReport {
	out := make([]PointReport, len(points))
	for i, p := range points {
		out[i] = PointReport{X: Float(p.X), Y: Float(p.Y)}
	}
	return SamplesReport{
		Domain: DomainReport{Min: Float(d.Min), Max: Float(d.Max)},
		Count:  len(out),
		Points: out,
	}
}

func newSeriesReports(series []Series) []SeriesReport {
	out := make([]SeriesReport, len(series))
	for i, s := range series {
		pts := make([]SeriesPointReport, len(s.Points))
		for j, p := range s.Points {
			pts[j] = SeriesPointReport{X: Float(p.X), Y: Float(p.Y), Iteration: p.Iteration, Error: Float(p.Error)}
		}
		out[i] = SeriesReport{Key: s.Key, Points: pts}
	}
	return out
}

// =============================================================================
// Analyze
// =============================================================================

// AnalyzeOptions tunes Analyze. The zero value is usable.
type AnalyzeOptions struct {
	// SampleCount overrides ChartSampleCount when positive.
	SampleCount int

	// Formatter prints root displays. Nil means the default locale.
	Formatter *Formatter
}

// Analyze runs the whole pipeline for one problem.
//
// Description:
//
//	Normalizes the secant settings, solves in closed form, runs the
//	secant iterator, derives a plotting domain framing every point of
//	interest, samples the curve over it and renders the LaTeX strings.
//
// Inputs:
//
//	eq   - The equation coefficients.
//	raw  - Secant settings as entered; normalized before use.
//	opts - Sampling and formatting options.
//
// Outputs:
//
//	Report - Safe to marshal as JSON or YAML.
//
// Thread Safety: Safe for concurrent use.
func Analyze(eq Equation, raw SecantParams, opts AnalyzeOptions) Report {
	f := opts.Formatter
	if f == nil {
		f = defaultFormatter
	}
	n := opts.SampleCount
	if n <= 0 {
		n = ChartSampleCount
	}

	coeffs := eq.Coefficients()
	cfg := quadratic.NormalizeSecant(raw.Config())
	sol := quadratic.Solve(coeffs)
	res := quadratic.RunSecant(coeffs, cfg)
	domain := DeriveDomain(cfg, sol, res.Iterations)
	samples := quadratic.GenerateSamples(coeffs, domain, n)

	return Report{
		Equation: EquationReport{A: Float(eq.A), B: Float(eq.B), C: Float(eq.C)},
		Locale:   f.Locale(),
		Solution: NewSolutionReport(sol, f),
		Secant:   NewSecantReport(res, cfg),
		Domain:   DomainReport{Min: Float(domain.Min), Max: Float(domain.Max)},
		Chart:    newSeriesReports(ChartSeries(samples, SecantSeries(res.Iterations))),
		Latex: LatexReport{
			Polynomial: PolynomialLatex(coeffs),
			General:    GeneralFormula,
			Secant:     SecantFormula,
		},
	}
}
