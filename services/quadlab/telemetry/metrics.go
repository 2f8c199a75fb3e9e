// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricSolves           = "quadlab_solves_total"
	MetricSecantRuns       = "quadlab_secant_runs_total"
	MetricSecantIterations = "quadlab_secant_iterations"
	MetricSamples          = "quadlab_samples_generated_total"
	MetricBatchSize        = "quadlab_batch_size"
	MetricErrors           = "quadlab_errors_total"
)

// Metrics holds quadlab's OpenTelemetry instruments.
//
// All Record methods are no-ops on a nil *Metrics.
type Metrics struct {
	SolvesTotal      metric.Int64Counter
	SecantRunsTotal  metric.Int64Counter
	SecantIterations metric.Int64Histogram
	SamplesTotal     metric.Int64Counter
	BatchSize        metric.Int64Histogram
	ErrorsTotal      metric.Int64Counter
}

// NewMetrics creates every instrument on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.SolvesTotal, err = meter.Int64Counter(MetricSolves,
		metric.WithDescription("Closed-form solves by root status"),
		metric.WithUnit("{solve}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricSolves, err)
	}

	m.SecantRunsTotal, err = meter.Int64Counter(MetricSecantRuns,
		metric.WithDescription("Secant runs by terminal status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricSecantRuns, err)
	}

	m.SecantIterations, err = meter.Int64Histogram(MetricSecantIterations,
		metric.WithDescription("Iterations recorded per secant run"),
		metric.WithUnit("{iteration}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricSecantIterations, err)
	}

	m.SamplesTotal, err = meter.Int64Counter(MetricSamples,
		metric.WithDescription("Polynomial samples generated"),
		metric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricSamples, err)
	}

	m.BatchSize, err = meter.Int64Histogram(MetricBatchSize,
		metric.WithDescription("Problems per batch request"),
		metric.WithUnit("{problem}"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricBatchSize, err)
	}

	m.ErrorsTotal, err = meter.Int64Counter(MetricErrors,
		metric.WithDescription("Request errors by code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricErrors, err)
	}

	return m, nil
}

// RecordSolve counts one closed-form solve.
func (m *Metrics) RecordSolve(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.SolvesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordSecant counts one secant run and its iteration count.
func (m *Metrics) RecordSecant(ctx context.Context, status string, iterations int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.SecantRunsTotal.Add(ctx, 1, attrs)
	m.SecantIterations.Record(ctx, int64(iterations), attrs)
}

// RecordSamples counts generated samples.
func (m *Metrics) RecordSamples(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.SamplesTotal.Add(ctx, int64(n))
}

// RecordBatch records a batch size.
func (m *Metrics) RecordBatch(ctx context.Context, size int) {
	if m == nil {
		return
	}
	m.BatchSize.Record(ctx, int64(size))
}

// RecordError counts one error response.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}
