// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		// Valid slugs
		{"single word", "complex", false},
		{"hyphenated", "clean-roots", false},
		{"with digits", "case-42", false},
		{"all digits", "2024", false},
		{"max length", strings.Repeat("a", MaxSlugLength), false},

		// Invalid slugs
		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxSlugLength+1), true},
		{"uppercase", "Clean-Roots", true},
		{"spaces", "clean roots", true},
		{"leading hyphen", "-roots", true},
		{"trailing hyphen", "roots-", true},
		{"double hyphen", "clean--roots", true},
		{"path traversal", "../roots", true},
		{"slash", "a/b", true},
		{"unicode", "raíz", true},
		{"superscript", "x²", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"complex", "complex", false},
		{"  Double-Root ", "double-root", false},
		{"DOUBLE-ROOT", "double-root", false},
		{"double root", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := SanitizeSlug(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("SanitizeSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("SanitizeSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
