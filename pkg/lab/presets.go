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
	_ "embed"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/quadlab/pkg/quadratic"
	"github.com/AleutianAI/quadlab/pkg/validation"
)

//go:embed presets.yaml
var builtinPresetsYAML []byte

var (
	validate       *validator.Validate
	builtinCatalog *Catalog
)

func init() {
	validate = validator.New()
	if err := RegisterFiniteValidation(validate); err != nil {
		panic(err)
	}

	var builtins []Preset
	if err := yaml.Unmarshal(builtinPresetsYAML, &builtins); err != nil {
		panic(fmt.Sprintf("lab: parse embedded presets: %v", err))
	}
	cat, err := newCatalog(builtins)
	if err != nil {
		panic(fmt.Sprintf("lab: embedded presets: %v", err))
	}
	builtinCatalog = cat
}

// RegisterFiniteValidation adds the "finite" tag to v. The tag rejects
// NaN and ±Inf on float fields and passes every other kind.
func RegisterFiniteValidation(v *validator.Validate) error {
	return v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			return finite(field.Float())
		default:
			return true
		}
	})
}

// =============================================================================
// Input Types
// =============================================================================

// Equation holds user-supplied coefficients of a·x² + b·x + c.
type Equation struct {
	A float64 `json:"a" yaml:"a" validate:"finite"`
	B float64 `json:"b" yaml:"b" validate:"finite"`
	C float64 `json:"c" yaml:"c" validate:"finite"`
}

// Coefficients converts to the solver's representation.
func (e Equation) Coefficients() quadratic.Coefficients {
	return quadratic.Coefficients{A: e.A, B: e.B, C: e.C}
}

// SecantParams holds user-supplied secant settings.
type SecantParams struct {
	X0            float64    `json:"x0" yaml:"x0" validate:"finite"`
	X1            float64    `json:"x1" yaml:"x1" validate:"finite"`
	Tolerance     float64    `json:"tolerance" yaml:"tolerance" validate:"finite"`
	MaxIterations Iterations `json:"max_iterations" yaml:"max_iterations"`
}

// Config converts to the solver's representation without normalizing.
func (p SecantParams) Config() quadratic.SecantConfig {
	return quadratic.SecantConfig{X0: p.X0, X1: p.X1, Tolerance: p.Tolerance, MaxIterations: int(p.MaxIterations)}
}

// SecantParamsFrom converts back from a solver configuration.
func SecantParamsFrom(cfg quadratic.SecantConfig) SecantParams {
	return SecantParams{X0: cfg.X0, X1: cfg.X1, Tolerance: cfg.Tolerance, MaxIterations: Iterations(cfg.MaxIterations)}
}

// Iterations is an iteration cap decoded from any JSON or YAML number.
// Fractional and out-of-range values are rounded and clamped with
// quadratic.NormalizeIterations.
type Iterations int

func (n *Iterations) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Iterations(quadratic.NormalizeIterations(v))
	return nil
}

func (n *Iterations) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil {
		return err
	}
	*n = Iterations(quadratic.NormalizeIterations(v))
	return nil
}

// =============================================================================
// Presets
// =============================================================================

// Preset is a named example problem.
type Preset struct {
	Name        string       `json:"name" yaml:"name" validate:"required"`
	Slug        string       `json:"slug" yaml:"slug"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Equation    Equation     `json:"equation" yaml:"equation"`
	Secant      SecantParams `json:"secant" yaml:"secant"`
}

// Validate checks struct tags, fills in a missing slug and normalizes
// the slug to lowercase.
func (p *Preset) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPreset, p.Name, err)
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	slug, err := validation.SanitizeSlug(p.Slug)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPreset, p.Name, err)
	}
	p.Slug = slug
	return nil
}

// Slugify lowercases name and joins its words with hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Catalog is an immutable, ordered set of presets with unique slugs.
type Catalog struct {
	presets []Preset
	index   map[string]int
}

// NewCatalog returns the built-in presets followed by extra.
//
// Description:
//
//	Each extra preset is validated; a missing slug is derived from the
//	name. Slugs must be unique across built-ins and extras.
//
// Inputs:
//
//	extra - Additional presets, typically from the config file. May be nil.
//
// Outputs:
//
//	*Catalog - The merged catalogue.
//	error    - ErrInvalidPreset or ErrDuplicatePreset.
func NewCatalog(extra []Preset) (*Catalog, error) {
	all := make([]Preset, 0, len(builtinCatalog.presets)+len(extra))
	all = append(all, builtinCatalog.presets...)
	all = append(all, extra...)
	return newCatalog(all)
}

func newCatalog(presets []Preset) (*Catalog, error) {
	c := &Catalog{
		presets: make([]Preset, 0, len(presets)),
		index:   make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.Slug]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePreset, p.Slug)
		}
		c.index[p.Slug] = len(c.presets)
		c.presets = append(c.presets, p)
	}
	return c, nil
}

// All returns a copy of the presets in catalogue order.
func (c *Catalog) All() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}

// Find looks a preset up by slug or by name, ignoring case.
func (c *Catalog) Find(name string) (Preset, error) {
	key := Slugify(name)
	if i, ok := c.index[key]; ok {
		return c.presets[i], nil
	}
	for _, p := range c.presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// Presets returns the built-in presets.
func Presets() []Preset {
	return builtinCatalog.All()
}

// FindPreset looks up a built-in preset. See Catalog.Find.
func FindPreset(name string) (Preset, error) {
	return builtinCatalog.Find(name)
}
