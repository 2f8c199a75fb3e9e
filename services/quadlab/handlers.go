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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/logging"
	"github.com/AleutianAI/quadlab/services/quadlab/middleware"
)

// Handlers holds HTTP handlers for the quadlab API.
type Handlers struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandlers creates handlers backed by svc. A nil logger means Nop.
func NewHandlers(svc *Service, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handlers{svc: svc, logger: logger}
}

// HandleSolve handles POST /v1/quadlab/solve.
//
// Description:
//
//	Solves a·x² + b·x + c = 0 in closed form. An equation whose leading
//	coefficient is zero is not an error: it returns status "invalid".
//
// Request Body:
//
//	SolveRequest {a, b, c}
//
// Response:
//
//	200 OK: lab.SolutionReport
//	400 Bad Request: ErrorResponse (INVALID_REQUEST)
func (h *Handlers) HandleSolve(c *gin.Context) {
	logger := h.requestLogger(c, "HandleSolve")

	var req SolveRequest
	if !h.bind(c, logger, &req) {
		return
	}

	rep := h.svc.Solve(c.Request.Context(), req.Equation)
	logger.Info("Solved equation", "status", rep.Status)
	c.JSON(http.StatusOK, rep)
}

// HandleSecant handles POST /v1/quadlab/secant.
//
// Description:
//
//	Normalizes the secant settings and runs the iterator. The response
//	echoes the normalized configuration.
//
// Request Body:
//
//	SecantRequest {coefficients, secant}
//
// Response:
//
//	200 OK: lab.SecantReport
//	400 Bad Request: ErrorResponse (INVALID_REQUEST)
func (h *Handlers) HandleSecant(c *gin.Context) {
	logger := h.requestLogger(c, "HandleSecant")

	var req SecantRequest
	if !h.bind(c, logger, &req) {
		return
	}

	rep := h.svc.Secant(c.Request.Context(), req.Coefficients, req.Secant)
	logger.Info("Secant run finished", "status", rep.Status, "iterations", len(rep.Iterations))
	c.JSON(http.StatusOK, rep)
}

// HandleSamples handles POST /v1/quadlab/samples.
//
// Response:
//
//	200 OK: lab.SamplesReport
//	400 Bad Request: ErrorResponse (INVALID_REQUEST, SAMPLE_COUNT_OUT_OF_RANGE)
func (h *Handlers) HandleSamples(c *gin.Context) {
	logger := h.requestLogger(c, "HandleSamples")

	var req SamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, logger, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	rep, err := h.svc.Samples(c.Request.Context(), req)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// HandleAnalyze handles POST /v1/quadlab/analyze.
//
// Response:
//
//	200 OK: lab.Report
//	400 Bad Request: ErrorResponse (INVALID_REQUEST)
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	logger := h.requestLogger(c, "HandleAnalyze")

	var req SecantRequest
	if !h.bind(c, logger, &req) {
		return
	}

	rep := h.svc.Analyze(c.Request.Context(), req.Coefficients, req.Secant)
	logger.Info("Analysis complete", "status", rep.Solution.Status, "secant_status", rep.Secant.Status)
	c.JSON(http.StatusOK, rep)
}

// HandleBatch handles POST /v1/quadlab/batch.
//
// Response:
//
//	200 OK: BatchResponse
//	400 Bad Request: ErrorResponse (INVALID_REQUEST, BATCH_EMPTY)
//	413 Request Entity Too Large: ErrorResponse (BATCH_TOO_LARGE)
func (h *Handlers) HandleBatch(c *gin.Context) {
	logger := h.requestLogger(c, "HandleBatch")

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, logger, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	// Size is checked before tag validation so oversized batches get 413.
	if err := h.svc.CheckBatchSize(len(req.Problems)); err != nil {
		h.fail(c, logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, logger, err)
		return
	}

	reports, err := h.svc.Batch(c.Request.Context(), req.Problems)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	logger.Info("Batch analyzed", "count", len(reports))
	c.JSON(http.StatusOK, BatchResponse{Count: len(reports), Reports: reports})
}

// HandleListPresets handles GET /v1/quadlab/presets.
func (h *Handlers) HandleListPresets(c *gin.Context) {
	presets := h.svc.Presets()
	c.JSON(http.StatusOK, PresetsResponse{Count: len(presets), Presets: presets})
}

// HandleAnalyzePreset handles GET /v1/quadlab/presets/:name/analyze.
//
// Response:
//
//	200 OK: lab.Report
//	404 Not Found: ErrorResponse (PRESET_NOT_FOUND)
func (h *Handlers) HandleAnalyzePreset(c *gin.Context) {
	logger := h.requestLogger(c, "HandleAnalyzePreset")
	name := c.Param("name")

	rep, err := h.svc.AnalyzePreset(c.Request.Context(), name)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	logger.Info("Preset analyzed", "preset", name)
	c.JSON(http.StatusOK, rep)
}

// HandleHealth handles GET /v1/quadlab/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: h.svc.Version()})
}

// HandleReady handles GET /v1/quadlab/ready.
func (h *Handlers) HandleReady(c *gin.Context) {
	if !h.svc.Ready() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "service not ready", Code: CodeNotReady})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ready", Presets: len(h.svc.Presets())})
}

// =============================================================================
// Helpers
// =============================================================================

type validatable interface {
	Validate() error
}

// bind decodes and validates the JSON body, writing a 400 on failure.
func (h *Handlers) bind(c *gin.Context, logger *logging.Logger, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.fail(c, logger, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return false
	}
	if err := req.Validate(); err != nil {
		h.fail(c, logger, err)
		return false
	}
	return true
}

// fail maps err to a status code and writes an ErrorResponse.
func (h *Handlers) fail(c *gin.Context, logger *logging.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "code", code)
	} else {
		logger.Warn("Request rejected", "error", err, "code", code)
	}
	h.svc.Metrics().RecordError(c.Request.Context(), code)
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// errorStatus maps sentinel errors to HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrSampleCountOutOfRange):
		return http.StatusBadRequest, CodeSampleCountOutOfRange
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, CodeBatchTooLarge
	case errors.Is(err, lab.ErrEmptyBatch):
		return http.StatusBadRequest, CodeBatchEmpty
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, lab.ErrPresetNotFound):
		return http.StatusNotFound, CodePresetNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeCancelled
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (h *Handlers) requestLogger(c *gin.Context, handler string) *logging.Logger {
	fallback := h.logger.With("request_id", getOrCreateRequestID(c))
	return logging.FromContext(c.Request.Context(), fallback).With("handler", handler)
}

// getOrCreateRequestID returns the ID assigned by middleware.RequestID,
// falling back to the header or a fresh UUID when the middleware is not
// installed.
func getOrCreateRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	requestID := c.GetHeader(middleware.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(middleware.RequestIDHeader, requestID)
	return requestID
}
