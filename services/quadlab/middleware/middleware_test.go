// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/quadlab/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =============================================================================
// RequestID
// =============================================================================

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := serve(r, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("assigns id when missing", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, seen)
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		w := serve(r, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

// =============================================================================
// RateLimit
// =============================================================================

func TestLimiter(t *testing.T) {
	l := NewLimiter(0.001, 2)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	l.SetLimit(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow())
	}

	l.SetLimit(0.001, 1)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(-1, 0)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow())
	}
}

func TestRateLimit(t *testing.T) {
	rejected := 0
	r := gin.New()
	r.Use(RateLimit(NewLimiter(0.001, 1), func(*gin.Context) { rejected++ }))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded","code":"RATE_LIMITED"}`, w.Body.String())
	assert.Equal(t, 1, rejected)
}

// =============================================================================
// AccessLog
// =============================================================================

func TestAccessLog(t *testing.T) {
	exporter := logging.NewBufferedExporter()
	logger := logging.New(logging.Config{Quiet: true, Exporter: exporter})
	defer logger.Close()

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		serve(r, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := exporter.Entries()
	require.Len(t, entries, 3)

	wantLevels := []logging.Level{logging.LevelInfo, logging.LevelWarn, logging.LevelError}
	for i, e := range entries {
		assert.Equal(t, "Request completed", e.Message)
		assert.Equal(t, wantLevels[i], e.Level)
		assert.NotEmpty(t, e.Attrs["request_id"])
		assert.Equal(t, http.MethodGet, e.Attrs["method"])
	}
	assert.Equal(t, "/bad", entries[1].Attrs["path"])
	assert.EqualValues(t, http.StatusInternalServerError, entries[2].Attrs["status"])
}

func TestAccessLog_StoresRequestLogger(t *testing.T) {
	exporter := logging.NewBufferedExporter()
	logger := logging.New(logging.Config{Quiet: true, Exporter: exporter})
	defer logger.Close()

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/inner", func(c *gin.Context) {
		logging.FromContext(c.Request.Context(), nil).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/inner", nil)
	req.Header.Set(RequestIDHeader, "trace-me")
	serve(r, req)

	entry, ok := exporter.Find("inside handler")
	require.True(t, ok)
	assert.Equal(t, "trace-me", entry.Attrs["request_id"])
}
