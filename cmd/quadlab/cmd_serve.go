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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/quadlab/cmd/quadlab/config"
	"github.com/AleutianAI/quadlab/services/quadlab"
	"github.com/AleutianAI/quadlab/services/quadlab/middleware"
	"github.com/AleutianAI/quadlab/services/quadlab/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quadlab HTTP API",
		Long: `Starts the HTTP API under /v1/quadlab. Presets, rate limits and the
batch cap are reloaded when the config file changes; the port is not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

// server bundles the pieces serve mutates on config reload.
type server struct {
	http    *http.Server
	svc     *quadlab.Service
	limiter *middleware.Limiter
}

// newServer builds the router and HTTP server from a.cfg. metrics may
// be nil.
func (a *app) newServer(metrics *telemetry.Metrics) *server {
	if a.cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, _ := a.cfg.Catalog()
	svc := quadlab.NewService(a.serviceOptions(), catalog, a.formatter, metrics, a.logger)
	limiter := middleware.NewLimiter(a.cfg.Server.RateLimitRPS, a.cfg.Server.RateLimitBurst)

	router := quadlab.NewRouter(svc, quadlab.RouterConfig{
		ServiceName: a.cfg.Telemetry.ServiceName,
		Limiter:     limiter,
		Logger:      a.logger,
	})

	return &server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		svc:     svc,
		limiter: limiter,
	}
}

// reload applies a changed config to a running server. Invalid configs
// are logged and ignored.
func (a *app) reload(s *server, cfg config.QuadLabConfig, err error) {
	if err != nil {
		a.logger.Warn("Config reload rejected, keeping current settings", "error", err)
		return
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		a.logger.Warn("Config reload rejected, keeping current settings", "error", err)
		return
	}

	s.svc.SetCatalog(catalog)
	s.svc.SetMaxBatch(cfg.Server.MaxBatch)
	s.limiter.SetLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	if cfg.Server.Port != a.cfg.Server.Port {
		a.logger.Warn("Port change requires a restart", "current", a.cfg.Server.Port, "configured", cfg.Server.Port)
	}
	a.logger.Info("Config reloaded",
		"presets", catalog.Len(),
		"max_batch", s.svc.MaxBatch(),
		"rate_limit_rps", cfg.Server.RateLimitRPS,
	)
}

// serve runs the HTTP server until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	slog.SetDefault(a.logger.Slog())

	telCfg := a.cfg.Telemetry
	telCfg.ServiceVersion = version
	shutdownTelemetry, err := telemetry.Init(ctx, telCfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			a.logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.Meter(telemetry.TracerName))
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	s := a.newServer(metrics)

	if a.cfgPath != "" {
		watcher, err := config.NewWatcher(a.cfgPath, func(cfg config.QuadLabConfig, err error) {
			a.reload(s, cfg, err)
		})
		if err != nil {
			a.logger.Warn("Config hot reload disabled", "path", a.cfgPath, "error", err)
		} else {
			go watcher.Start(ctx)
			defer watcher.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting quadlab server", "address", s.http.Addr, "version", version)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down quadlab server")
	s.svc.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
