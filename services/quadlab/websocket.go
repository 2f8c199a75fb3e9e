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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/quadlab/pkg/lab"
	"github.com/AleutianAI/quadlab/pkg/logging"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamReadLimit    = 64 * 1024
)

// StreamHandler serves GET /v1/quadlab/secant/stream.
//
// Protocol:
//
//	server -> {"type":"session","session_id":...}
//	client -> SecantRequest
//	server -> {"type":"iteration","iteration":{...}}   (one per step)
//	server -> {"type":"result","result":{...}}
//
// The client may send further requests on the same connection. A
// malformed request yields an "error" frame and the connection stays
// open.
type StreamHandler struct {
	svc      *Service
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a StreamHandler. A nil logger means Nop.
func NewStreamHandler(svc *Service, logger *logging.Logger) *StreamHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &StreamHandler{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handle upgrades the connection and runs the session loop.
func (s *StreamHandler) Handle(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade websocket", "error", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(streamReadLimit)

	sessionID := uuid.NewString()
	fallback := s.logger.With("request_id", getOrCreateRequestID(c))
	logger := logging.FromContext(c.Request.Context(), fallback).With("session_id", sessionID)
	logger.Info("Secant stream opened")

	if err := s.send(ws, StreamMessage{Type: StreamSession, SessionID: sessionID}); err != nil {
		return
	}

	ctx := c.Request.Context()
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				logger.Info("Secant stream closed", "code", closeErr.Code)
			} else {
				logger.Info("Secant stream ended", "error", err)
			}
			return
		}

		req, err := decodeStreamRequest(data)
		if err != nil {
			_, code := errorStatus(err)
			s.svc.Metrics().RecordError(ctx, code)
			logger.Warn("Rejected stream request", "error", err)
			if err := s.send(ws, StreamMessage{Type: StreamError, SessionID: sessionID, Error: &ErrorResponse{Error: err.Error(), Code: code}}); err != nil {
				return
			}
			continue
		}

		rep, err := s.svc.StreamSecant(ctx, req.Coefficients, req.Secant, func(it lab.IterationReport) error {
			if logger.Enabled(logging.LevelDebug) {
				logger.Debug("Streaming iteration", "index", it.Index, "x_next", float64(it.XNext))
			}
			return s.send(ws, StreamMessage{Type: StreamIteration, SessionID: sessionID, Iteration: &it})
		})
		if err != nil {
			logger.Warn("Secant stream aborted", "error", err)
			return
		}
		if err := s.send(ws, StreamMessage{Type: StreamResult, SessionID: sessionID, Result: &rep}); err != nil {
			return
		}
		logger.Info("Secant stream run complete", "status", rep.Status, "iterations", len(rep.Iterations))
	}
}

func decodeStreamRequest(data []byte) (SecantRequest, error) {
	var req SecantRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return SecantRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := req.Validate(); err != nil {
		return SecantRequest{}, err
	}
	return req, nil
}

func (s *StreamHandler) send(ws *websocket.Conn, msg StreamMessage) error {
	_ = ws.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	if err := ws.WriteJSON(msg); err != nil {
		s.logger.Warn("Failed to write websocket message", "type", msg.Type, "error", err)
		return err
	}
	return nil
}
