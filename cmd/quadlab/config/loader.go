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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPort overrides server.port.
	EnvPort = "QUADLAB_PORT"

	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "QUADLAB_LOG_LEVEL"
)

// DefaultPath returns ~/.quadlab/quadlab.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".quadlab", "quadlab.yaml"), nil
}

// Load reads, overrides and validates the configuration.
//
// Description:
//
//	An empty path means DefaultPath, which is created with defaults on
//	first run and announced on notice. An explicit path must exist.
//	Values missing from the file keep their defaults, then QUADLAB_PORT
//	and QUADLAB_LOG_LEVEL are applied.
//
// Inputs:
//
//	path   - Config file, or "" for the default location.
//	notice - Receives the first-run message. May be nil.
//
// Outputs:
//
//	QuadLabConfig - The validated configuration.
//	string        - The resolved file path, for Watch.
//	error         - ErrConfigNotFound, a parse error or ErrInvalidConfig.
func Load(path string, notice io.Writer) (QuadLabConfig, string, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return QuadLabConfig{}, "", err
		}
		path = defaultPath

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if notice != nil {
				fmt.Fprintf(notice, "First run detected, creating the config at %s\n", path)
			}
			if err := createDefault(path); err != nil {
				return QuadLabConfig{}, "", err
			}
		}
	}

	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile parses path on top of DefaultConfig, applies environment
// overrides and validates. Unknown keys are rejected.
func LoadFile(path string) (QuadLabConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return QuadLabConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return QuadLabConfig{}, fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return QuadLabConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig, applies environment
// overrides and validates.
func Parse(data []byte) (QuadLabConfig, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return QuadLabConfig{}, fmt.Errorf("failed to parse the config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return QuadLabConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return QuadLabConfig{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *QuadLabConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
