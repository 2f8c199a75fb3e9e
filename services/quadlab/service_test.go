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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AleutianAI/quadlab/pkg/lab"
)

func newTestService(opts Options) *Service {
	return NewService(opts, nil, nil, nil, nil)
}

func TestNewService_Defaults(t *testing.T) {
	svc := newTestService(Options{})

	assert.Equal(t, DefaultMaxBatch, svc.MaxBatch())
	assert.True(t, svc.Ready())
	assert.Len(t, svc.Presets(), 3)
	assert.Nil(t, svc.Metrics())

	svc.SetCatalog(nil)
	assert.Len(t, svc.Presets(), 3, "nil catalog is ignored")

	svc.SetMaxBatch(-4)
	assert.Equal(t, DefaultMaxBatch, svc.MaxBatch())
}

func TestService_Solve(t *testing.T) {
	svc := newTestService(Options{})

	rep := svc.Solve(context.Background(), lab.Equation{A: 2, B: 4, C: 8})
	assert.Equal(t, "complex", rep.Status)
	assert.Equal(t, "Complex conjugate pair", rep.Description)
	require.Len(t, rep.Roots, 2)
	assert.Equal(t, "complex", rep.Roots[0].Kind)
}

func TestService_Samples(t *testing.T) {
	svc := newTestService(Options{})
	ctx := context.Background()

	rep, err := svc.Samples(ctx, SamplesRequest{Coefficients: lab.Equation{A: 1}, Domain: &DomainRequest{Min: -1, Max: 1}, SampleCount: 3})
	require.NoError(t, err)
	assert.Equal(t, []lab.PointReport{{X: -1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}}, rep.Points)

	_, err = svc.Samples(ctx, SamplesRequest{SampleCount: MaxSampleCount + 1})
	assert.ErrorIs(t, err, ErrSampleCountOutOfRange)
}

func TestService_CheckBatchSize(t *testing.T) {
	svc := newTestService(Options{MaxBatch: 2})

	err := svc.CheckBatchSize(0)
	assert.ErrorIs(t, err, lab.ErrEmptyBatch)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.NoError(t, svc.CheckBatchSize(2))
	assert.ErrorIs(t, svc.CheckBatchSize(3), ErrBatchTooLarge)
}

func TestService_BatchCancelled(t *testing.T) {
	svc := newTestService(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Batch(ctx, []lab.Problem{{Equation: lab.Equation{A: 1}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_AnalyzePreset(t *testing.T) {
	svc := newTestService(Options{SampleCount: 10})

	rep, err := svc.AnalyzePreset(context.Background(), "Clean Roots")
	require.NoError(t, err)
	assert.Equal(t, "two-real", rep.Solution.Status)
	assert.Len(t, rep.Chart[0].Points, 10)

	_, err = svc.AnalyzePreset(context.Background(), "missing")
	assert.ErrorIs(t, err, lab.ErrPresetNotFound)
}

func TestService_StreamSecant(t *testing.T) {
	svc := newTestService(Options{})
	eq := lab.Equation{A: 1, B: 0, C: -2}
	params := lab.SecantParams{X0: 1, X1: 2, Tolerance: 1e-10, MaxIterations: 64}

	t.Run("emits every iteration", func(t *testing.T) {
		var seen []int
		rep, err := svc.StreamSecant(context.Background(), eq, params, func(it lab.IterationReport) error {
			seen = append(seen, it.Index)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, seen, len(rep.Iterations))
		assert.Equal(t, 1, seen[0])
	})

	t.Run("stops on emit error", func(t *testing.T) {
		stop := errors.New("client gone")
		calls := 0
		_, err := svc.StreamSecant(context.Background(), eq, params, func(lab.IterationReport) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.StreamSecant(ctx, eq, params, func(lab.IterationReport) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	svc := newTestService(Options{MaxBatch: 1})
	svc.Solve(context.Background(), lab.Equation{A: 1, B: -3, C: -4})
	_, err := svc.Batch(context.Background(), make([]lab.Problem, 2))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "quadlab.Solve", spans[0].Name())
	assert.Equal(t, "quadlab.Batch", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
