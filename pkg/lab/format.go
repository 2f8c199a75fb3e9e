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
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/AleutianAI/quadlab/pkg/quadratic"
)

const (
	// DefaultLocale is the BCP 47 tag used when none is configured.
	DefaultLocale = "es-ES"

	// DefaultDigits is the fraction-digit limit of FormatNumber.
	DefaultDigits = 6

	// Placeholder is printed in place of NaN and ±Inf.
	Placeholder = "—"

	// imagThreshold is the magnitude below which an imaginary part is
	// treated as zero when printing a root.
	imagThreshold = 1e-9
)

// Formatter prints numbers according to one locale.
//
// A Formatter is safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

var defaultFormatter = MustFormatter(DefaultLocale)

// NewFormatter creates a Formatter for a BCP 47 locale such as "es-ES".
//
// An empty locale selects DefaultLocale. Returns ErrUnknownLocale when
// the tag cannot be parsed.
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownLocale, locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// MustFormatter is NewFormatter that panics on error. For package-level
// defaults only.
func MustFormatter(locale string) *Formatter {
	f, err := NewFormatter(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number prints v with at most digits fraction digits.
func (f *Formatter) Number(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}
	if digits < 0 {
		digits = DefaultDigits
	}
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(digits)))
}

// Percent prints the fraction v as a percentage with four decimals,
// e.g. 0.25 -> "25.0000 %".
func (f *Formatter) Percent(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return f.printer.Sprintf("%v %%", number.Decimal(v*100,
		number.MinFractionDigits(4), number.MaxFractionDigits(4)))
}

// Scientific prints v in scientific notation with two fraction digits.
func (f *Formatter) Scientific(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return f.printer.Sprintf("%v", number.Scientific(v, number.MaxFractionDigits(2)))
}

// Root prints a real root as a number and a complex root as "re ± imi".
func (f *Formatter) Root(r quadratic.Root) string {
	if math.Abs(r.Imag) <= imagThreshold {
		return f.Number(r.Real, DefaultDigits)
	}
	sign := "+"
	if r.Imag < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s %s %si", f.Number(r.Real, DefaultDigits), sign, f.Number(math.Abs(r.Imag), DefaultDigits))
}

// FormatNumber formats with the default locale. See Formatter.Number.
func FormatNumber(v float64, digits int) string { return defaultFormatter.Number(v, digits) }

// FormatPercent formats with the default locale. See Formatter.Percent.
func FormatPercent(v float64) string { return defaultFormatter.Percent(v) }

// FormatScientific formats with the default locale. See Formatter.Scientific.
func FormatScientific(v float64) string { return defaultFormatter.Scientific(v) }

// FormatRoot formats with the default locale. See Formatter.Root.
func FormatRoot(r quadratic.Root) string { return defaultFormatter.Root(r) }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
