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

package core

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// MinTLSVersion defines the minimal TLS version used for outbound connections.
const MinTLSVersion uint16 = tls.VersionTLS12

// maxErrorBodySize caps the number of bytes read from an unexpected response, so a misbehaving server can't make us buffer arbitrary amounts of data.
const maxErrorBodySize = 64 * 1024

// logBodyClipSize is the number of body characters written to the log for unexpected responses.
const logBodyClipSize = 100

// ErrNonHTTPSRequest is returned by the StrictHTTPClient when strict mode is enabled and a plain HTTP request is attempted.
var ErrNonHTTPSRequest = errors.New("strictmode is enabled, but request is not over HTTPS")

// HTTPRequestDoer defines the Do method of the http.Client interface.
type HTTPRequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Is2xx returns true if the given status code is in the 2xx (successful) class.
func Is2xx(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

// TestResponseCode2xx checks whether the returned HTTP status response code is in the 2xx class.
// If it isn't it returns an HttpError, containing the received status code and (a capped part of) the response body.
func TestResponseCode2xx(response *http.Response) error {
	return TestResponseCode2xxWithLog(response, nil)
}

// TestResponseCode2xxWithLog acts like TestResponseCode2xx, but logs the response body if the status code is not as expected.
// It logs using the given logger, unless nil is passed.
func TestResponseCode2xxWithLog(response *http.Response, log *logrus.Entry) error {
	if Is2xx(response.StatusCode) {
		return nil
	}
	var responseData []byte
	if response.Body != nil {
		responseData, _ = io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
	}
	if log != nil {
		responseBodyString := string(responseData)
		if len(responseBodyString) > logBodyClipSize {
			responseBodyString = responseBodyString[:logBodyClipSize] + "...(clipped)"
		}
		entry := log.WithField(LogFieldHTTPStatus, response.StatusCode)
		if response.Request != nil && response.Request.URL != nil {
			entry = entry.WithField("http_request_path", response.Request.URL.Path)
		}
		entry.Infof("Unexpected HTTP response (len=%d): %s", len(responseData), responseBodyString)
	}
	return HttpError{
		error:        fmt.Errorf("server returned HTTP %d (expected: 2xx)", response.StatusCode),
		StatusCode:   response.StatusCode,
		ResponseBody: responseData,
	}
}

// NewStrictHTTPClient creates a HTTPRequestDoer that only allows HTTPS calls when strictmode is enabled.
// The client keeps a connection pool (cloned from http.DefaultTransport), so a single instance should be shared by all callers.
// Redirects are not followed: the redirect response itself is returned to the caller.
func NewStrictHTTPClient(strictmode bool, timeout time.Duration, tlsConfig *tls.Config) *StrictHTTPClient {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{
			MinVersion: MinTLSVersion,
		}
	}

	transport := http.DefaultTransport
	// Might not be http.Transport in testing
	if httpTransport, ok := transport.(*http.Transport); ok {
		httpTransport = httpTransport.Clone()
		httpTransport.TLSClientConfig = tlsConfig
		transport = httpTransport
	}

	return &StrictHTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		strictMode: strictmode,
	}
}

// StrictHTTPClient is a HTTPRequestDoer that refuses non-HTTPS requests in strict mode.
type StrictHTTPClient struct {
	client     *http.Client
	strictMode bool
}

func (s *StrictHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if s.strictMode && req.URL.Scheme != "https" {
		return nil, ErrNonHTTPSRequest
	}
	return s.client.Do(req)
}

// CloseIdleConnections closes pooled connections that are currently not in use.
func (s *StrictHTTPClient) CloseIdleConnections() {
	s.client.CloseIdleConnections()
}
