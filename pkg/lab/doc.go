// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lab builds the derived views that presentation layers render
// on top of package quadratic: plotting domains, chart series, LaTeX
// strings, locale-aware number formatting, preset problems and the
// serializable Report returned by Analyze.
//
// Everything here is a pure function of its inputs. Report and its
// children are safe to marshal as JSON or YAML: non-finite floats are
// encoded as null.
package lab
