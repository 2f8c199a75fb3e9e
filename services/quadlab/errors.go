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

import "errors"

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeSampleCountOutOfRange = "SAMPLE_COUNT_OUT_OF_RANGE"
	CodeBatchTooLarge         = "BATCH_TOO_LARGE"
	CodeBatchEmpty            = "BATCH_EMPTY"
	CodePresetNotFound        = "PRESET_NOT_FOUND"
	CodeRateLimited           = "RATE_LIMITED"
	CodeNotReady              = "NOT_READY"
	CodeCancelled             = "CANCELLED"
	CodeInternal              = "INTERNAL_ERROR"
)

var (
	// ErrSampleCountOutOfRange indicates a sample count other than 0
	// or [MinSampleCount, MaxSampleCount].
	ErrSampleCountOutOfRange = errors.New("sample count out of range")

	// ErrBatchTooLarge indicates more problems than the configured maximum.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
)
