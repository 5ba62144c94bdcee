/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Handler is a stub of an issuer's nonce endpoint, useful in testing.
// Usage:
//
//	s := httptest.NewServer(&Handler{StatusCode: http.StatusOK, ResponseData: someStruct})
//
// Then s.URL must be configured in the client.
type Handler struct {
	StatusCode   int
	ResponseData interface{}
	// EchoIssuerState makes the handler respond with a cNonce derived from the received issuerState.
	// It is used to check that concurrent responses aren't mixed up.
	EchoIssuerState bool
	// Delay postpones the response. The handler returns early when the client goes away.
	Delay time.Duration

	// Calls counts the number of received requests.
	Calls atomic.Int64

	mux            sync.Mutex
	request        *http.Request
	requestHeaders http.Header
	requestData    []byte
}

func (h *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.Calls.Inc()
	requestData, _ := io.ReadAll(req.Body)
	h.mux.Lock()
	h.request = req
	h.requestData = requestData
	h.requestHeaders = req.Header.Clone()
	h.mux.Unlock()

	if h.Delay > 0 {
		select {
		case <-time.After(h.Delay):
		case <-req.Context().Done():
			return
		}
	}

	responseData := h.ResponseData
	if h.EchoIssuerState {
		var body map[string]string
		_ = json.Unmarshal(requestData, &body)
		responseData = map[string]interface{}{"cNonce": "nonce-for-" + body["issuerState"], "cNonceExpiresIn": 300}
	}
	var bytes []byte
	if s, ok := responseData.(string); ok {
		bytes = []byte(s)
	} else {
		writer.Header().Add("Content-Type", "application/json")
		bytes, _ = json.Marshal(responseData)
	}
	statusCode := h.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(bytes)
}

// Request returns the method and path of the last received request.
func (h *Handler) Request() (method string, path string) {
	h.mux.Lock()
	defer h.mux.Unlock()
	if h.request == nil {
		return "", ""
	}
	return h.request.Method, h.request.URL.EscapedPath()
}

// RequestData returns the body of the last received request.
func (h *Handler) RequestData() []byte {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.requestData
}

// RequestHeaders returns the headers of the last received request.
func (h *Handler) RequestHeaders() http.Header {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.requestHeaders
}
