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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// =============================================================================
// Init Tests
// =============================================================================

func TestInit_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	_, err := Init(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestInit_NoneExporters(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{TraceExporter: ExporterNone, MetricExporter: ExporterNone})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporters(t *testing.T) {
	_, err := Init(context.Background(), Config{TraceExporter: "zipkin", MetricExporter: ExporterNone})
	assert.ErrorIs(t, err, ErrUnknownExporter)

	_, err = Init(context.Background(), Config{TraceExporter: ExporterNone, MetricExporter: "statsd"})
	assert.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInit_PrometheusServesMetrics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = ExporterPrometheus

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	defer shutdown(context.Background())

	m, err := NewMetrics(otel.Meter("telemetry_test"))
	require.NoError(t, err)
	m.RecordSolve(context.Background(), "two-real")

	handler := MetricsHandler()
	require.NotNil(t, handler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "quadlab_solves")
	assert.Contains(t, string(body), "quadlab_build_info")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")
	t.Setenv("OTEL_METRICS_EXPORTER", "none")
	t.Setenv("QUADLAB_ENV", "test")

	cfg := DefaultConfig()
	assert.Equal(t, "quadlab", cfg.ServiceName)
	assert.Equal(t, ExporterStdout, cfg.TraceExporter)
	assert.Equal(t, ExporterNone, cfg.MetricExporter)
	assert.Equal(t, "test", cfg.Environment)
}

// =============================================================================
// Metrics Tests
// =============================================================================

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSolve(ctx, "complex")
	m.RecordSolve(ctx, "complex")
	m.RecordSecant(ctx, "converged", 5)
	m.RecordSamples(ctx, 320)
	m.RecordBatch(ctx, 3)
	m.RecordError(ctx, "INVALID_REQUEST")

	got := collect(t, reader)

	solves, ok := got[MetricSolves].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, solves.DataPoints, 1)
	assert.Equal(t, int64(2), solves.DataPoints[0].Value)
	status, _ := solves.DataPoints[0].Attributes.Value("status")
	assert.Equal(t, "complex", status.AsString())

	iters, ok := got[MetricSecantIterations].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, iters.DataPoints, 1)
	assert.Equal(t, uint64(1), iters.DataPoints[0].Count)
	assert.Equal(t, int64(5), iters.DataPoints[0].Sum)

	samples, ok := got[MetricSamples].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(320), samples.DataPoints[0].Value)

	assert.Contains(t, got, MetricSecantRuns)
	assert.Contains(t, got, MetricBatchSize)
	assert.Contains(t, got, MetricErrors)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordSolve(ctx, "x")
		m.RecordSecant(ctx, "x", 1)
		m.RecordSamples(ctx, 1)
		m.RecordBatch(ctx, 1)
		m.RecordError(ctx, "x")
	})
}

// =============================================================================
// Tracing Tests
// =============================================================================

func TestStartSpanAndRecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "quadlab.Solve")
	assert.NotEmpty(t, TraceID(ctx))
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "quadlab.Solve", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}
