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
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Problem is one entry of a batch.
type Problem struct {
	Equation Equation     `json:"equation" yaml:"equation"`
	Secant   SecantParams `json:"secant" yaml:"secant"`
}

// AnalyzeBatch runs Analyze over problems concurrently.
//
// Description:
//
//	At most limit problems are analyzed at once; limit <= 0 means
//	GOMAXPROCS. Reports are returned in input order. Cancelling ctx
//	stops scheduling further work and returns ctx.Err().
//
// Inputs:
//
//	ctx      - Cancellation context.
//	problems - Problems to analyze. Must not be empty.
//	opts     - Applied to every problem.
//	limit    - Maximum concurrent analyses.
//
// Outputs:
//
//	[]Report - One report per problem, same order.
//	error    - ErrEmptyBatch or the context error.
func AnalyzeBatch(ctx context.Context, problems []Problem, opts AnalyzeOptions, limit int) ([]Report, error) {
	if len(problems) == 0 {
		return nil, ErrEmptyBatch
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(problems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range problems {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = Analyze(p.Equation, p.Secant, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
