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

	"github.com/AleutianAI/quadlab/cmd/quadlab/config"
	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/logging"
	"github.com/AleutianAI/quadlab/pkg/ux"
	"github.com/AleutianAI/quadlab/services/quadlab"
)

// app carries what every subcommand needs after the root pre-run.
type app struct {
	// flags
	configPath string
	output     string
	logLevel   string

	cfg       config.QuadLabConfig
	cfgPath   string
	logger    *logging.Logger
	formatter *lab.Formatter
	render    *ux.Renderer
	svc       *quadlab.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "quadlab",
		Short: "Quadratic equation and secant method laboratory",
		Long: `quadlab solves a·x² + b·x + c = 0 in closed form, approximates a root
with the secant method and samples the polynomial for plotting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.quadlab/quadlab.yaml)")
	flags.StringVarP(&a.output, "output", "o", string(ux.FormatAuto), "output format: auto, text, json or yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "override logging.level: debug, info, warn or error")

	rootCmd.AddCommand(
		newSolveCmd(a),
		newSecantCmd(a),
		newSamplesCmd(a),
		newAnalyzeCmd(a),
		newPresetsCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup loads the config and builds the logger, renderer and service.
func (a *app) setup(cmd *cobra.Command) error {
	format, err := ux.ParseFormat(a.output)
	if err != nil {
		return err
	}

	cfg, path, err := config.Load(a.configPath, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg, a.cfgPath = cfg, path

	level := cfg.LogLevel()
	if a.logLevel != "" {
		if level, err = logging.ParseLevel(a.logLevel); err != nil {
			return err
		}
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "quadlab",
		JSON:    cfg.Logging.JSON,
		Output:  cmd.ErrOrStderr(),
	})
	if path := a.logger.LogFilePath(); path != "" {
		a.logger.Debug("Writing log file", "path", path)
	}

	if a.formatter, err = lab.NewFormatter(cfg.Lab.Locale); err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	a.svc = quadlab.NewService(a.serviceOptions(), catalog, a.formatter, nil, a.logger)
	a.render = ux.NewRenderer(cmd.OutOrStdout(), format, a.formatter)

	a.logger.Debug("Configuration loaded", "path", path, "format", a.render.Format())
	return nil
}

func (a *app) serviceOptions() quadlab.Options {
	return quadlab.Options{
		MaxBatch:    a.cfg.Server.MaxBatch,
		SampleCount: a.cfg.Lab.SampleCount,
		Version:     version,
	}
}
