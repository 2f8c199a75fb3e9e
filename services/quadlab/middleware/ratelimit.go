// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter is a process-wide token bucket whose rate can change at
// runtime. A rate change starts a fresh bucket.
type Limiter struct {
	limiter atomic.Pointer[rate.Limiter]
}

// NewLimiter creates a Limiter allowing rps requests per second with
// the given burst. rps <= 0 disables limiting.
func NewLimiter(rps float64, burst int) *Limiter {
	l := &Limiter{}
	l.SetLimit(rps, burst)
	return l
}

// SetLimit replaces the rate and burst. rps <= 0 disables limiting.
func (l *Limiter) SetLimit(rps float64, burst int) {
	l.limiter.Store(newRateLimiter(rps, burst))
}

// Allow consumes one token if available.
func (l *Limiter) Allow() bool {
	return l.limiter.Load().Allow()
}

func newRateLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 || math.IsInf(rps, 1) || math.IsNaN(rps) {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// RateLimitResponse mirrors the API's error body.
type RateLimitResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RateLimit rejects requests with 429 RATE_LIMITED when l is exhausted.
// onReject, when non-nil, is called for each rejected request.
func RateLimit(l *Limiter, onReject func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow() {
			c.Next()
			return
		}
		if onReject != nil {
			onReject(c)
		}
		c.Header("Retry-After", strconv.Itoa(1))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitResponse{
			Error: "rate limit exceeded",
			Code:  "RATE_LIMITED",
		})
	}
}
