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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/quadlab/pkg/lab"
)

func dialStream(t *testing.T) *websocket.Conn {
	t.Helper()

	svc := NewService(Options{}, nil, nil, nil, nil)
	srv := httptest.NewServer(NewRouter(svc, RouterConfig{}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/quadlab/secant/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) StreamMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readRun collects iteration frames up to and including the result frame.
func readRun(t *testing.T, conn *websocket.Conn) ([]lab.IterationReport, lab.SecantReport) {
	t.Helper()

	var iterations []lab.IterationReport
	for {
		msg := readFrame(t, conn)
		switch msg.Type {
		case StreamIteration:
			require.NotNil(t, msg.Iteration)
			iterations = append(iterations, *msg.Iteration)
		case StreamResult:
			require.NotNil(t, msg.Result)
			return iterations, *msg.Result
		default:
			t.Fatalf("unexpected frame %q", msg.Type)
		}
	}
}

func TestStreamHandler_StreamsIterationsThenResult(t *testing.T) {
	conn := dialStream(t)

	hello := readFrame(t, conn)
	require.Equal(t, StreamSession, hello.Type)
	require.NotEmpty(t, hello.SessionID)

	req := SecantRequest{
		Coefficients: lab.Equation{A: 1, B: 0, C: -2},
		Secant:       lab.SecantParams{X0: 1, X1: 2, Tolerance: 1e-10, MaxIterations: 64},
	}
	require.NoError(t, conn.WriteJSON(req))

	iterations, result := readRun(t, conn)
	assert.Equal(t, "converged", result.Status)
	require.Greater(t, len(iterations), 2)
	assert.Len(t, result.Iterations, len(iterations))
	for i, it := range iterations {
		assert.Equal(t, i+1, it.Index)
	}
	require.NotNil(t, result.Approx)
	assert.InDelta(t, 1.41421356, float64(*result.Approx), 1e-8)

	// The connection accepts further runs.
	require.NoError(t, conn.WriteJSON(cleanRoots()))
	iterations, result = readRun(t, conn)
	assert.Len(t, iterations, 1)
	assert.Equal(t, "converged", result.Status)
}

func TestStreamHandler_InvalidRequestKeepsSession(t *testing.T) {
	conn := dialStream(t)
	hello := readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{broken")))

	msg := readFrame(t, conn)
	require.Equal(t, StreamError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, CodeInvalidRequest, msg.Error.Code)
	assert.Equal(t, hello.SessionID, msg.SessionID)

	require.NoError(t, conn.WriteJSON(cleanRoots()))
	_, result := readRun(t, conn)
	assert.Equal(t, "converged", result.Status)
}

func TestStreamHandler_InvalidEquationHasNoIterations(t *testing.T) {
	conn := dialStream(t)
	readFrame(t, conn)

	req := cleanRoots()
	req.Coefficients.A = 0
	require.NoError(t, conn.WriteJSON(req))

	iterations, result := readRun(t, conn)
	assert.Empty(t, iterations)
	assert.Equal(t, "invalid", result.Status)
}

func TestDecodeStreamRequest(t *testing.T) {
	_, err := decodeStreamRequest([]byte(`{"coefficients":{"a":1,"b":2,"c":3}}`))
	assert.NoError(t, err)

	_, err = decodeStreamRequest([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
