// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/quadlab/pkg/lab"
)

// Renderer writes lab reports in one output format.
//
// Thread Safety: not safe for concurrent use; writes go straight to w.
type Renderer struct {
	w       io.Writer
	format  Format
	numbers *lab.Formatter
}

// NewRenderer creates a Renderer. FormatAuto is resolved against w, and
// a nil numbers formatter uses lab.DefaultLocale.
func NewRenderer(w io.Writer, format Format, numbers *lab.Formatter) *Renderer {
	if numbers == nil {
		numbers = lab.MustFormatter(lab.DefaultLocale)
	}
	return &Renderer{w: w, format: format.Resolve(w), numbers: numbers}
}

// Format returns the resolved output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Solution renders the closed-form result.
func (r *Renderer) Solution(rep lab.SolutionReport) error {
	return r.emit(rep, func() string { return r.solutionText(rep) })
}

// Secant renders the iteration summary and table.
func (r *Renderer) Secant(rep lab.SecantReport) error {
	return r.emit(rep, func() string { return r.secantText(rep) })
}

// Samples renders the sampled points.
func (r *Renderer) Samples(rep lab.SamplesReport) error {
	return r.emit(rep, func() string { return r.samplesText(rep) })
}

// Report renders a full analysis.
func (r *Renderer) Report(rep lab.Report) error {
	return r.emit(rep, func() string { return r.reportText(rep) })
}

// Presets renders the preset catalogue.
func (r *Renderer) Presets(presets []lab.Preset) error {
	return r.emit(presets, func() string { return r.presetsText(presets) })
}

// Value renders v as JSON or YAML, or as text in the text format.
func (r *Renderer) Value(v any, text string) error {
	return r.emit(v, func() string { return text })
}

func (r *Renderer) emit(v any, text func() string) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(r.w, text())
		return err
	}
}

// =============================================================================
// Text Layouts
// =============================================================================

func (r *Renderer) num(v lab.Float) string {
	return r.numbers.Number(float64(v), lab.DefaultDigits)
}

func field(label, value string) string {
	return Styles.Label.Render(label) + value
}

func (r *Renderer) solutionText(rep lab.SolutionReport) string {
	lines := []string{Styles.Title.Render("Closed-form solution")}

	if !rep.Valid {
		lines = append(lines,
			field("Status", IconError.Render()+" "+Styles.Error.Render(rep.Description)),
			Styles.Warning.Render(rep.Message),
		)
		return Styles.Box.Render(strings.Join(lines, "\n"))
	}

	lines = append(lines,
		field("Status", IconSuccess.Render()+" "+rep.Description),
		field("Discriminant", r.num(rep.Discriminant)),
	)
	for i, root := range rep.Roots {
		lines = append(lines, field(fmt.Sprintf("Root x%d", i+1), Styles.Highlight.Render(root.Display)))
	}
	lines = append(lines, field("Vertex", fmt.Sprintf("(%s, %s)", r.num(rep.Vertex.X), r.num(rep.Vertex.Y))))

	return Styles.Box.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) secantText(rep lab.SecantReport) string {
	style, icon := StatusStyle(rep.Status)

	approx := lab.Placeholder
	if rep.Approx != nil {
		approx = r.num(*rep.Approx)
	}

	cfg := rep.Config
	lines := []string{
		Styles.Title.Render("Secant method"),
		field("Status", icon.Render()+" "+style.Render(rep.Label)),
		field("Approximation", Styles.Highlight.Render(approx)),
		field("Guesses", fmt.Sprintf("x0 = %s, x1 = %s", r.numbers.Number(cfg.X0, lab.DefaultDigits), r.numbers.Number(cfg.X1, lab.DefaultDigits))),
		field("Tolerance", r.numbers.Scientific(cfg.Tolerance)),
		field("Max iterations", strconv.Itoa(int(cfg.MaxIterations))),
	}
	if rep.Reason != "" {
		lines = append(lines, Styles.Muted.Render(rep.Reason))
	}

	out := Styles.Box.Render(strings.Join(lines, "\n"))
	if len(rep.Iterations) > 0 {
		out += "\n" + r.iterationTable(rep.Iterations)
	}
	return out
}

func (r *Renderer) iterationTable(iters []lab.IterationReport) string {
	rows := make([][]string, len(iters))
	for i, it := range iters {
		rows[i] = []string{
			strconv.Itoa(it.Index),
			r.num(it.XPrev),
			r.num(it.XCurr),
			r.num(it.XNext),
			r.num(it.FNext),
			r.numbers.Scientific(float64(it.Error)),
			r.numbers.Scientific(float64(it.Delta)),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.TableHeader
			}
			return Styles.TableCell
		}).
		Headers("n", "x(n-1)", "x(n)", "x(n+1)", "f(x(n+1))", "error", "delta").
		Rows(rows...).
		String()
}

func (r *Renderer) samplesText(rep lab.SamplesReport) string {
	rows := make([][]string, len(rep.Points))
	for i, p := range rep.Points {
		rows[i] = []string{strconv.Itoa(i), r.num(p.X), r.num(p.Y)}
	}

	header := Styles.Title.Render(fmt.Sprintf("%d samples on [%s, %s]", rep.Count, r.num(rep.Domain.Min), r.num(rep.Domain.Max)))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.TableHeader
			}
			return Styles.TableCell
		}).
		Headers("i", "x", "f(x)").
		Rows(rows...)

	return header + "\n" + t.String()
}

func (r *Renderer) reportText(rep lab.Report) string {
	eq := rep.Equation
	parts := []string{
		Styles.Title.Render(fmt.Sprintf("f(x) = %sx² %s %sx %s %s",
			r.num(eq.A), signOf(eq.B), r.num(abs(eq.B)), signOf(eq.C), r.num(abs(eq.C)))),
		Styles.Muted.Render(rep.Latex.Polynomial),
		r.solutionText(rep.Solution),
		r.secantText(rep.Secant),
		field("Chart domain", fmt.Sprintf("[%s, %s]", r.num(rep.Domain.Min), r.num(rep.Domain.Max))),
	}
	for _, s := range rep.Chart {
		parts = append(parts, field("Series", fmt.Sprintf("%s (%d points)", s.Key, len(s.Points))))
	}
	return strings.Join(parts, "\n")
}

func (r *Renderer) presetsText(presets []lab.Preset) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		rows[i] = []string{
			p.Slug,
			p.Name,
			fmt.Sprintf("%s, %s, %s", r.numbers.Number(p.Equation.A, 3), r.numbers.Number(p.Equation.B, 3), r.numbers.Number(p.Equation.C, 3)),
			p.Description,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.TableHeader
			}
			return Styles.TableCell
		}).
		Headers("slug", "name", "a, b, c", "description").
		Rows(rows...).
		String()
}

func signOf(v lab.Float) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v lab.Float) lab.Float {
	if v < 0 {
		return -v
	}
	return v
}
