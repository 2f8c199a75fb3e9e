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

import "errors"

// Sentinel errors for the lab package.
var (
	// ErrPresetNotFound indicates no preset matches the requested name.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset indicates a preset definition failed validation.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrDuplicatePreset indicates two presets share a slug.
	ErrDuplicatePreset = errors.New("duplicate preset")

	// ErrUnknownLocale indicates the locale tag could not be parsed.
	ErrUnknownLocale = errors.New("unknown locale")

	// ErrEmptyBatch indicates AnalyzeBatch was called with no problems.
	ErrEmptyBatch = errors.New("batch is empty")
)
