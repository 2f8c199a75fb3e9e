// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quadlab

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/logging"
	"github.com/AleutianAI/quadlab/pkg/quadratic"
	"github.com/AleutianAI/quadlab/services/quadlab/telemetry"
)

// Service defaults.
const (
	DefaultMaxBatch = 50
)

// Options tunes a Service.
type Options struct {
	// MaxBatch caps POST /batch. Zero means DefaultMaxBatch.
	MaxBatch int

	// BatchConcurrency caps concurrent analyses per batch. Zero means
	// GOMAXPROCS.
	BatchConcurrency int

	// SampleCount overrides lab.ChartSampleCount for reports.
	SampleCount int

	// Version is reported by the health endpoint.
	Version string
}

// Service implements the quadlab operations behind the HTTP handlers.
//
// # Thread Safety
//
// Safe for concurrent use. The preset catalogue and batch limit can be
// swapped at runtime by SetCatalog and SetMaxBatch.
type Service struct {
	opts      Options
	formatter *lab.Formatter
	metrics   *telemetry.Metrics
	logger    *logging.Logger

	catalog  atomic.Pointer[lab.Catalog]
	maxBatch atomic.Int64
	ready    atomic.Bool
}

// NewService creates a Service.
//
// Inputs:
//
//	opts      - Limits and defaults.
//	catalog   - Preset catalogue. Nil means the built-ins.
//	formatter - Locale for root displays. Nil means lab.DefaultLocale.
//	metrics   - Instruments. Nil disables metrics.
//	logger    - Nil means logging.Nop().
func NewService(opts Options, catalog *lab.Catalog, formatter *lab.Formatter, metrics *telemetry.Metrics, logger *logging.Logger) *Service {
	if catalog == nil {
		catalog, _ = lab.NewCatalog(nil)
	}
	if formatter == nil {
		formatter = lab.MustFormatter(lab.DefaultLocale)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Service{opts: opts, formatter: formatter, metrics: metrics, logger: logger}
	s.catalog.Store(catalog)
	s.SetMaxBatch(opts.MaxBatch)
	s.ready.Store(true)
	return s
}

// SetCatalog replaces the preset catalogue.
func (s *Service) SetCatalog(c *lab.Catalog) {
	if c != nil {
		s.catalog.Store(c)
	}
}

// SetMaxBatch replaces the batch limit. n <= 0 means DefaultMaxBatch.
func (s *Service) SetMaxBatch(n int) {
	if n <= 0 {
		n = DefaultMaxBatch
	}
	s.maxBatch.Store(int64(n))
}

// MaxBatch returns the current batch limit.
func (s *Service) MaxBatch() int {
	return int(s.maxBatch.Load())
}

// SetReady toggles the readiness probe.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Ready reports readiness.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Version returns the configured build version.
func (s *Service) Version() string {
	return s.opts.Version
}

// Metrics returns the service instruments, possibly nil.
func (s *Service) Metrics() *telemetry.Metrics {
	return s.metrics
}

// =============================================================================
// Operations
// =============================================================================

// Solve classifies and solves one equation.
func (s *Service) Solve(ctx context.Context, eq lab.Equation) lab.SolutionReport {
	ctx, span := telemetry.StartSpan(ctx, "quadlab.Solve")
	defer span.End()

	sol := quadratic.Solve(eq.Coefficients())
	span.SetAttributes(attribute.String("quadlab.status", string(sol.Status)))
	s.metrics.RecordSolve(ctx, string(sol.Status))

	return lab.NewSolutionReport(sol, s.formatter)
}

// Secant normalizes params and runs the secant iterator.
func (s *Service) Secant(ctx context.Context, eq lab.Equation, params lab.SecantParams) lab.SecantReport {
	ctx, span := telemetry.StartSpan(ctx, "quadlab.RunSecant")
	defer span.End()

	cfg := quadratic.NormalizeSecant(params.Config())
	res := quadratic.RunSecant(eq.Coefficients(), cfg)

	span.SetAttributes(
		attribute.String("quadlab.secant.status", string(res.Status)),
		attribute.Int("quadlab.secant.iterations", len(res.Iterations)),
	)
	s.metrics.RecordSecant(ctx, string(res.Status), len(res.Iterations))

	return lab.NewSecantReport(res, cfg)
}

// Samples evaluates the polynomial over req.Domain.
//
// Returns ErrSampleCountOutOfRange or ErrInvalidRequest on bad input.
func (s *Service) Samples(ctx context.Context, req SamplesRequest) (lab.SamplesReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "quadlab.GenerateSamples")
	defer span.End()

	if err := req.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return lab.SamplesReport{}, err
	}

	domain := quadratic.Domain{Min: quadratic.DefaultDomainMin, Max: quadratic.DefaultDomainMax}
	if req.Domain != nil {
		domain = quadratic.Domain{Min: req.Domain.Min, Max: req.Domain.Max}
	}
	domain = domain.Sanitize()
	points := quadratic.GenerateSamples(req.Coefficients.Coefficients(), domain, req.SampleCount)

	span.SetAttributes(attribute.Int("quadlab.samples", len(points)))
	s.metrics.RecordSamples(ctx, len(points))

	return lab.NewSamplesReport(domain, points), nil
}

// Analyze builds the full lab report for one problem.
func (s *Service) Analyze(ctx context.Context, eq lab.Equation, params lab.SecantParams) lab.Report {
	ctx, span := telemetry.StartSpan(ctx, "quadlab.Analyze")
	defer span.End()

	rep := lab.Analyze(eq, params, s.analyzeOptions())
	s.recordReport(ctx, rep)
	return rep
}

// Batch analyzes several problems concurrently.
//
// Description:
//
//	Rejects empty batches and batches larger than MaxBatch before doing
//	any work. Reports keep input order.
//
// Outputs:
//
//	[]lab.Report - One per problem.
//	error        - ErrInvalidRequest (wrapping lab.ErrEmptyBatch), ErrBatchTooLarge
//	               or a context error.
func (s *Service) Batch(ctx context.Context, problems []lab.Problem) ([]lab.Report, error) {
	ctx, span := telemetry.StartSpan(ctx, "quadlab.Batch", attribute.Int("quadlab.batch.size", len(problems)))
	defer span.End()

	if err := s.CheckBatchSize(len(problems)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	reports, err := lab.AnalyzeBatch(ctx, problems, s.analyzeOptions(), s.opts.BatchConcurrency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordBatch(ctx, len(problems))
	for _, rep := range reports {
		s.recordReport(ctx, rep)
	}
	return reports, nil
}

// CheckBatchSize rejects empty batches and batches above MaxBatch.
func (s *Service) CheckBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, lab.ErrEmptyBatch)
	}
	if limit := s.MaxBatch(); n > limit {
		return fmt.Errorf("%w: %d problems, limit %d", ErrBatchTooLarge, n, limit)
	}
	return nil
}

// Presets returns the current catalogue.
func (s *Service) Presets() []lab.Preset {
	return s.catalog.Load().All()
}

// AnalyzePreset builds the report for the named preset.
//
// Returns lab.ErrPresetNotFound when no preset matches.
func (s *Service) AnalyzePreset(ctx context.Context, name string) (lab.Report, error) {
	p, err := s.catalog.Load().Find(name)
	if err != nil {
		return lab.Report{}, err
	}
	return s.Analyze(ctx, p.Equation, p.Secant), nil
}

// StreamSecant runs the secant iterator and hands each iteration to
// emit before returning the final report.
//
// Emission stops at the first emit error or when ctx is cancelled.
func (s *Service) StreamSecant(ctx context.Context, eq lab.Equation, params lab.SecantParams, emit func(lab.IterationReport) error) (lab.SecantReport, error) {
	rep := s.Secant(ctx, eq, params)
	for _, it := range rep.Iterations {
		if err := ctx.Err(); err != nil {
			return lab.SecantReport{}, err
		}
		if err := emit(it); err != nil {
			return lab.SecantReport{}, err
		}
	}
	return rep, nil
}

func (s *Service) analyzeOptions() lab.AnalyzeOptions {
	return lab.AnalyzeOptions{SampleCount: s.opts.SampleCount, Formatter: s.formatter}
}

func (s *Service) recordReport(ctx context.Context, rep lab.Report) {
	s.metrics.RecordSolve(ctx, rep.Solution.Status)
	s.metrics.RecordSecant(ctx, rep.Secant.Status, len(rep.Secant.Iterations))
	if len(rep.Chart) > 0 {
		s.metrics.RecordSamples(ctx, len(rep.Chart[0].Points))
	}
}
