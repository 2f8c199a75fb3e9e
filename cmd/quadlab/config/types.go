// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/logging"
	"github.com/AleutianAI/quadlab/services/quadlab/telemetry"
)

// QuadLabConfig is the on-disk configuration for the quadlab CLI and
// server.
type QuadLabConfig struct {
	// Server: HTTP listener and request limits
	Server ServerConfig `yaml:"server"`

	// Logging: level and destinations
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry: OTel exporter selection
	Telemetry telemetry.Config `yaml:"telemetry"`

	// Lab: report defaults and user presets
	Lab LabConfig `yaml:"lab"`
}

type ServerConfig struct {
	Port           int     `yaml:"port" validate:"min=1,max=65535"`
	Debug          bool    `yaml:"debug"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"finite,min=0"` // 0 disables limiting
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"min=0"`
	MaxBatch       int     `yaml:"max_batch" validate:"min=0,max=1000"` // 0 means the service default
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir,omitempty"`
	JSON  bool   `yaml:"json"`
}

type LabConfig struct {
	// SampleCount is the polynomial resolution of analyze reports.
	SampleCount int `yaml:"sample_count" validate:"min=0,max=10000"`

	// Locale is a BCP 47 tag used for formatted numbers, e.g. es-ES.
	Locale string `yaml:"locale"`

	// Presets are appended to the built-in catalogue.
	Presets []lab.Preset `yaml:"presets,omitempty"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() QuadLabConfig {
	tel := telemetry.DefaultConfig()
	tel.ServiceVersion = ""

	return QuadLabConfig{
		Server: ServerConfig{
			Port:           12240,
			RateLimitRPS:   50,
			RateLimitBurst: 100,
			MaxBatch:       50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: tel,
		Lab: LabConfig{
			SampleCount: lab.ChartSampleCount,
			Locale:      lab.DefaultLocale,
			Presets:     []lab.Preset{},
		},
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := lab.RegisterFiniteValidation(validate); err != nil {
		panic(err)
	}
}

// Validate checks field ranges and cross-references.
//
// Description:
//
//	Struct tags cover numeric ranges. The log level, locale and exporter
//	names are checked against the packages that consume them, and the
//	user presets must build a catalogue together with the built-ins.
//
// Outputs:
//
//	error - Wraps ErrInvalidConfig, or nil.
func (c *QuadLabConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if _, err := lab.NewFormatter(c.Lab.Locale); err != nil {
		return fmt.Errorf("%w: lab.locale: %v", ErrInvalidConfig, err)
	}
	if err := validate.Var(c.Telemetry.TraceExporter, "omitempty,oneof=none otlp stdout"); err != nil {
		return fmt.Errorf("%w: telemetry.trace_exporter %q", ErrInvalidConfig, c.Telemetry.TraceExporter)
	}
	if err := validate.Var(c.Telemetry.MetricExporter, "omitempty,oneof=none prometheus stdout"); err != nil {
		return fmt.Errorf("%w: telemetry.metric_exporter %q", ErrInvalidConfig, c.Telemetry.MetricExporter)
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("%w: lab.presets: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Catalog builds the preset catalogue: built-ins, then Lab.Presets.
func (c *QuadLabConfig) Catalog() (*lab.Catalog, error) {
	return lab.NewCatalog(c.Lab.Presets)
}

// LogLevel returns the parsed logging level, Info when unparseable.
func (c *QuadLabConfig) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
