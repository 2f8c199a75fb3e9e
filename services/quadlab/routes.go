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
)

// RegisterRoutes mounts the quadlab API on rg under /quadlab.
//
// Inputs:
//
//	rg       - Parent group, normally /v1.
//	handlers - Handler set.
//	stream   - Websocket handler for the iteration stream.
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers, stream *StreamHandler) {
	quadlab := rg.Group("/quadlab")
	{
		quadlab.POST("/solve", handlers.HandleSolve)
		quadlab.POST("/secant", handlers.HandleSecant)
		quadlab.POST("/samples", handlers.HandleSamples)
		quadlab.POST("/analyze", handlers.HandleAnalyze)
		quadlab.POST("/batch", handlers.HandleBatch)

		presets := quadlab.Group("/presets")
		{
			presets.GET("", handlers.HandleListPresets)
			presets.GET("/:name/analyze", handlers.HandleAnalyzePreset)
		}

		quadlab.GET("/secant/stream", stream.Handle)

		quadlab.GET("/health", handlers.HandleHealth)
		quadlab.GET("/ready", handlers.HandleReady)
	}
}
