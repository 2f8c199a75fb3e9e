// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for identifiers that
// end up in URLs and config files.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength bounds preset slugs so they stay usable as path segments.
const MaxSlugLength = 64

// slugPattern matches lowercase words joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug validates a preset slug.
//
// Valid slugs:
//   - 1-64 characters
//   - Lowercase letters a-z and digits 0-9
//   - Single hyphens between words, none leading or trailing
//
// Example:
//
//	if err := validation.ValidateSlug(p.Slug); err != nil {
//	    return fmt.Errorf("invalid preset: %w", err)
//	}
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("slug too long: %d characters (max %d)", len(slug), MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid slug format: %q (must be lowercase alphanumeric words joined by hyphens)", slug)
	}
	return nil
}

// SanitizeSlug normalizes and validates a slug.
// Returns the trimmed, lowercased slug if valid.
func SanitizeSlug(input string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(input))
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return slug, nil
}
