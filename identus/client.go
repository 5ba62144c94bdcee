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

package identus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus/log"
	"github.com/sirupsen/logrus"
)

// maxResponseSize is the maximum size of a nonce response body that will be decoded.
const maxResponseSize = 1024 * 1024

// maxDrainSize is the number of unread body bytes discarded before closing a response,
// so the underlying connection can be returned to the pool.
const maxDrainSize = 64 * 1024

const issuersPath = "oid4vci/issuers"
const noncesPath = "nonces"

// Client requests nonces from an Identus credential issuer.
type Client interface {
	// RequestNonce requests a fresh nonce for the given issuer state from the configured issuer.
	RequestNonce(ctx context.Context, issuerState string) (*NonceResponse, error)
	// RequestNonceForIssuer requests a fresh nonce for the given issuer state from the given issuer.
	RequestNonceForIssuer(ctx context.Context, issuerID string, issuerState string) (*NonceResponse, error)
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient is a Client that calls the nonce endpoint of an Identus cloud agent over HTTP.
// It holds no mutable state, so it can be used by multiple goroutines concurrently.
type HTTPClient struct {
	config     Config
	baseURL    string
	httpClient core.HTTPRequestDoer
}

// NewHTTPClient creates a HTTPClient from the given configuration.
// It returns an error matching ErrConfiguration if the configuration is incomplete or the URL is invalid.
// When strictMode is enabled only https URLs are accepted.
func NewHTTPClient(config Config, strictMode bool) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, core.WrapError(ErrConfiguration, err)
	}
	baseURL, err := core.ParseBaseURL(config.URL, strictMode)
	if err != nil {
		return nil, core.WrapError(ErrConfiguration, fmt.Errorf("invalid url (url=%s): %w", config.URL, err))
	}
	return &HTTPClient{
		config:     config,
		baseURL:    baseURL.String(),
		httpClient: core.NewStrictHTTPClient(strictMode, config.Timeout, nil),
	}, nil
}

// RequestNonce requests a nonce from the configured issuer.
func (c *HTTPClient) RequestNonce(ctx context.Context, issuerState string) (*NonceResponse, error) {
	return c.RequestNonceForIssuer(ctx, c.config.IssuerID, issuerState)
}

// RequestNonceForIssuer sends a single POST to {url}/oid4vci/issuers/{issuerID}/nonces.
// The request is never retried and the result is never cached.
func (c *HTTPClient) RequestNonceForIssuer(ctx context.Context, issuerID string, issuerState string) (*NonceResponse, error) {
	start := time.Now()
	logger := log.Logger().
		WithField(core.LogFieldIssuerID, issuerID).
		WithField(core.LogFieldRequestID, uuid.NewString())
	result, err := c.requestNonce(ctx, issuerID, NewNonceRequest(issuerState), logger)
	observeNonceRequest(start, err)
	if err != nil {
		logger.WithError(err).
			WithField(core.LogFieldErrorKind, ErrorKind(err)).
			Debug("Nonce request failed")
		return nil, err
	}
	logger.Debug("Received nonce from issuer")
	return result, nil
}

func (c *HTTPClient) requestNonce(ctx context.Context, issuerID string, request NonceRequest, logger *logrus.Entry) (*NonceResponse, error) {
	if issuerID == "" {
		return nil, core.WrapError(ErrInvalidArgument, errors.New("issuer ID is empty"))
	}
	if c.config.ValidateIssuerState && request.IssuerState() == "" {
		return nil, core.WrapError(ErrInvalidArgument, errors.New("issuer state is empty"))
	}
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, core.WrapError(ErrInvalidArgument, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nonceEndpoint(issuerID), bytes.NewReader(requestBody))
	if err != nil {
		return nil, core.WrapError(ErrInvalidArgument, err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", core.UserAgent())

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, core.WrapError(ErrTransport, err)
	}
	defer closeResponse(httpResponse, logger)

	if err = core.TestResponseCode2xxWithLog(httpResponse, logger); err != nil {
		return nil, core.WrapError(ErrProtocol, err)
	}
	data, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxResponseSize+1))
	if err != nil {
		return nil, core.WrapError(ErrTransport, fmt.Errorf("unable to read response: %w", err))
	}
	if len(data) > maxResponseSize {
		return nil, core.WrapError(ErrDecode, fmt.Errorf("response exceeds %d bytes", maxResponseSize))
	}
	result, err := parseNonceResponse(data)
	if err != nil {
		return nil, core.WrapError(ErrDecode, err)
	}
	return result, nil
}

func (c *HTTPClient) nonceEndpoint(issuerID string) string {
	return core.JoinURLPaths(c.baseURL, issuersPath, url.PathEscape(issuerID), noncesPath)
}

// closeResponse discards what is left of the body and closes it.
func closeResponse(response *http.Response, logger *logrus.Entry) {
	if response.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxDrainSize))
	if err := response.Body.Close(); err != nil {
		logger.WithError(err).Debug("Unable to close nonce response body")
	}
}
