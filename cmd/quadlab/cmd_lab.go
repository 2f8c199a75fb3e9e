// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/quadratic"
	"github.com/AleutianAI/quadlab/services/quadlab"
)

// =============================================================================
// Shared Flags
// =============================================================================

// equationFlags default to the "clean roots" equation x² - 3x - 4.
type equationFlags struct {
	a, b, c float64
}

func (f *equationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.a, "a", 1, "quadratic coefficient")
	cmd.Flags().Float64Var(&f.b, "b", -3, "linear coefficient")
	cmd.Flags().Float64Var(&f.c, "c", -4, "constant term")
}

func (f *equationFlags) equation() lab.Equation {
	return lab.Equation{A: f.a, B: f.b, C: f.c}
}

// secantFlags hold the raw iteration count as a float so that values
// like 17.5 round the same way the API does.
type secantFlags struct {
	x0, x1, tolerance, maxIterations float64
}

func (f *secantFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.x0, "x0", -2, "first initial guess")
	cmd.Flags().Float64Var(&f.x1, "x1", 4, "second initial guess")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", quadratic.DefaultTolerance, "stop when |x(n+1) - x(n)| falls below this")
	cmd.Flags().Float64Var(&f.maxIterations, "max-iterations", 18, "iteration cap, 1 to 64")
}

func (f *secantFlags) params() lab.SecantParams {
	return lab.SecantParams{
		X0:            f.x0,
		X1:            f.x1,
		Tolerance:     f.tolerance,
		MaxIterations: lab.Iterations(quadratic.NormalizeIterations(f.maxIterations)),
	}
}

var secantFlagNames = []string{"a", "b", "c", "x0", "x1", "tolerance", "max-iterations"}

// =============================================================================
// Commands
// =============================================================================

func newSolveCmd(a *app) *cobra.Command {
	var eq equationFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a·x² + b·x + c = 0 with the quadratic formula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render.Solution(a.svc.Solve(cmd.Context(), eq.equation()))
		},
	}
	eq.register(cmd)
	return cmd
}

func newSecantCmd(a *app) *cobra.Command {
	var (
		eq     equationFlags
		secant secantFlags
	)
	cmd := &cobra.Command{
		Use:   "secant",
		Short: "Approximate a root with the secant method",
		Long: `Runs the secant iteration from two initial guesses. The tolerance is
clamped to [1e-10, 1e-1] and the iteration cap to [1, 64].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render.Secant(a.svc.Secant(cmd.Context(), eq.equation(), secant.params()))
		},
	}
	eq.register(cmd)
	secant.register(cmd)
	return cmd
}

func newSamplesCmd(a *app) *cobra.Command {
	var (
		eq                   equationFlags
		domainMin, domainMax float64
		count                int
	)
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Evaluate the polynomial at evenly spaced points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.svc.Samples(cmd.Context(), quadlab.SamplesRequest{
				Coefficients: eq.equation(),
				Domain:       &quadlab.DomainRequest{Min: domainMin, Max: domainMax},
				SampleCount:  count,
			})
			if err != nil {
				return err
			}
			return a.render.Samples(rep)
		},
	}
	eq.register(cmd)
	cmd.Flags().Float64Var(&domainMin, "min", quadratic.DefaultDomainMin, "domain start")
	cmd.Flags().Float64Var(&domainMax, "max", quadratic.DefaultDomainMax, "domain end")
	cmd.Flags().IntVar(&count, "count", 21, fmt.Sprintf("number of samples, %d to %d", quadlab.MinSampleCount, quadlab.MaxSampleCount))
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		eq     equationFlags
		secant secantFlags
		preset string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Solve, iterate and sample in one report",
		Example: `  quadlab analyze --preset double-root
  quadlab analyze --a 2 --b 4 --c 8 --x0 -2 --x1 1 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" {
				rep, err := a.svc.AnalyzePreset(cmd.Context(), preset)
				if err != nil {
					return err
				}
				return a.render.Report(rep)
			}
			return a.render.Report(a.svc.Analyze(cmd.Context(), eq.equation(), secant.params()))
		},
	}
	eq.register(cmd)
	secant.register(cmd)
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "analyze a preset by slug or name")
	for _, name := range secantFlagNames {
		cmd.MarkFlagsMutuallyExclusive("preset", name)
	}
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in and configured presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render.Presets(a.svc.Presets())
		},
	}
}
