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
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/quadlab/pkg/lab"
)

// Sample count bounds for POST /samples. Zero selects the default.
const (
	MinSampleCount = 2
	MaxSampleCount = 10000
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := lab.RegisterFiniteValidation(validate); err != nil {
		panic(err)
	}
}

// =============================================================================
// Requests
// =============================================================================

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	lab.Equation
}

// Validate checks struct tags.
func (r *SolveRequest) Validate() error {
	return validateStruct(r)
}

// SecantRequest is the body of POST /secant, POST /analyze and each
// websocket stream request.
type SecantRequest struct {
	Coefficients lab.Equation     `json:"coefficients"`
	Secant       lab.SecantParams `json:"secant"`
}

// Validate checks struct tags.
func (r *SecantRequest) Validate() error {
	return validateStruct(r)
}

// DomainRequest is a plotting range.
type DomainRequest struct {
	Min float64 `json:"min" validate:"finite"`
	Max float64 `json:"max" validate:"finite"`
}

// SamplesRequest is the body of POST /samples.
//
// A missing Domain selects [-5, 5]. SampleCount 0 selects the default.
type SamplesRequest struct {
	Coefficients lab.Equation   `json:"coefficients"`
	Domain       *DomainRequest `json:"domain,omitempty"`
	SampleCount  int            `json:"sample_count"`
}

// Validate checks struct tags and the sample count range.
func (r *SamplesRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.SampleCount != 0 && (r.SampleCount < MinSampleCount || r.SampleCount > MaxSampleCount) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSampleCountOutOfRange, r.SampleCount, MinSampleCount, MaxSampleCount)
	}
	return nil
}

// BatchRequest is the body of POST /batch.
type BatchRequest struct {
	Problems []lab.Problem `json:"problems" validate:"required,min=1,dive"`
}

// Validate checks struct tags.
func (r *BatchRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// BatchResponse is returned by POST /batch.
type BatchResponse struct {
	Count   int          `json:"count"`
	Reports []lab.Report `json:"reports"`
}

// PresetsResponse is returned by GET /presets.
type PresetsResponse struct {
	Count   int          `json:"count"`
	Presets []lab.Preset `json:"presets"`
}

// HealthResponse is returned by GET /health and GET /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Presets int    `json:"presets,omitempty"`
}

// =============================================================================
// Stream Messages
// =============================================================================

// Stream message types sent on GET /secant/stream.
const (
	StreamSession   = "session"
	StreamIteration = "iteration"
	StreamResult    = "result"
	StreamError     = "error"
)

// StreamMessage is one server-to-client websocket frame.
type StreamMessage struct {
	Type      string               `json:"type"`
	SessionID string               `json:"session_id"`
	Iteration *lab.IterationReport `json:"iteration,omitempty"`
	Result    *lab.SecantReport    `json:"result,omitempty"`
	Error     *ErrorResponse       `json:"error,omitempty"`
}
