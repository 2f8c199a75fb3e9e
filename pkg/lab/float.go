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

import (
	"bytes"
	"encoding/json"
	"math"
)

// Float is a float64 that marshals NaN and ±Inf as null.
//
// encoding/json rejects non-finite floats outright, and the solver
// reports NaN for the discriminant and vertex of an invalid equation.
type Float float64

// IsFinite reports whether f is neither NaN nor infinite.
func (f Float) IsFinite() bool {
	return finite(float64(f))
}

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (f Float) MarshalYAML() (any, error) {
	if !f.IsFinite() {
		return nil, nil
	}
	return float64(f), nil
}
