// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package quadlab exposes the quadratic solver, secant iterator and lab
// reports over HTTP.
//
// Routes are mounted under /v1/quadlab by RegisterRoutes. NewRouter
// assembles a complete gin engine with tracing, request IDs, rate
// limiting and the Prometheus scrape endpoint.
//
// # Endpoints
//
//	POST /v1/quadlab/solve                 closed-form solution
//	POST /v1/quadlab/secant                secant run
//	POST /v1/quadlab/samples               sampled curve
//	POST /v1/quadlab/analyze               full lab report
//	POST /v1/quadlab/batch                 several reports at once
//	GET  /v1/quadlab/presets               preset catalogue
//	GET  /v1/quadlab/presets/:name/analyze report for one preset
//	GET  /v1/quadlab/secant/stream         websocket iteration stream
//	GET  /v1/quadlab/health                liveness
//	GET  /v1/quadlab/ready                 readiness
package quadlab
