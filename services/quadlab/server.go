// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quadlab

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/quadlab/pkg/logging"
	"github.com/AleutianAI/quadlab/services/quadlab/middleware"
	"github.com/AleutianAI/quadlab/services/quadlab/telemetry"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// ServiceName names the otelgin server spans.
	ServiceName string

	// Limiter throttles /v1 routes. Nil disables rate limiting.
	Limiter *middleware.Limiter

	// Logger receives access and handler logs. Nil means Nop.
	Logger *logging.Logger
}

// NewRouter assembles the gin engine for quadlab.
//
// Description:
//
//	Installs recovery, otelgin tracing, request IDs and access logging
//	on every route and rate limiting on /v1 only. GET /metrics is mounted
//	outside /v1 when the Prometheus exporter is active.
//
// Inputs:
//
//	svc - The service.
//	cfg - Router options.
//
// Outputs:
//
//	*gin.Engine - Ready to serve.
func NewRouter(svc *Service, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "quadlab"
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.ServiceName),
		middleware.RequestID(),
		middleware.AccessLog(logger),
	)

	if h := telemetry.MetricsHandler(); h != nil {
		router.GET("/metrics", gin.WrapH(h))
	}

	v1 := router.Group("/v1")
	if cfg.Limiter != nil {
		v1.Use(middleware.RateLimit(cfg.Limiter, func(c *gin.Context) {
			svc.Metrics().RecordError(c.Request.Context(), CodeRateLimited)
		}))
	}

	RegisterRoutes(v1, NewHandlers(svc, logger), NewStreamHandler(svc, logger))
	return router
}
