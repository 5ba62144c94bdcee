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
	"context"
	"errors"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus/log"
)

const moduleName = "Identus"

var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.Runnable = (*Engine)(nil)
var _ core.Diagnosable = (*Engine)(nil)
var _ Client = (*Engine)(nil)

var errNotConfigured = core.WrapError(ErrConfiguration, errors.New("client not configured"))

// Engine makes the nonce client part of the system: it receives its configuration from the server config
// and constructs the client once, when the system is configured.
type Engine struct {
	config Config
	client *HTTPClient
}

// New creates a new Engine with the default configuration.
func New() *Engine {
	return &Engine{config: DefaultConfig()}
}

func (e *Engine) Name() string {
	return moduleName
}

// ConfigKey returns an empty key: the client's properties are read from the root of the configuration.
func (e *Engine) ConfigKey() string {
	return ""
}

func (e *Engine) Config() interface{} {
	return &e.config
}

// Configure constructs the client. It fails when the configuration is incomplete or invalid.
func (e *Engine) Configure(config core.ServerConfig) error {
	client, err := NewHTTPClient(e.config, config.Strictmode)
	if err != nil {
		return err
	}
	if err = registerMetrics(); err != nil {
		return err
	}
	e.client = client
	log.Logger().
		WithField(core.LogFieldIssuerID, e.config.IssuerID).
		Infof("Identus nonce client configured (url=%s, timeout=%s)", client.baseURL, e.config.Timeout)
	return nil
}

func (e *Engine) Start() error {
	return nil
}

// Shutdown closes idle connections of the client's connection pool.
func (e *Engine) Shutdown() error {
	if e.client == nil {
		return nil
	}
	if closer, ok := e.client.httpClient.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
	return nil
}

// RequestNonce requests a nonce from the configured issuer, using the client constructed by Configure.
func (e *Engine) RequestNonce(ctx context.Context, issuerState string) (*NonceResponse, error) {
	if e.client == nil {
		return nil, errNotConfigured
	}
	return e.client.RequestNonce(ctx, issuerState)
}

// RequestNonceForIssuer requests a nonce from the given issuer, using the client constructed by Configure.
func (e *Engine) RequestNonceForIssuer(ctx context.Context, issuerID string, issuerState string) (*NonceResponse, error) {
	if e.client == nil {
		return nil, errNotConfigured
	}
	return e.client.RequestNonceForIssuer(ctx, issuerID, issuerState)
}

func (e *Engine) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "url", Value: e.config.URL},
		&core.GenericDiagnosticResult{Title: "issuer_id", Value: e.config.IssuerID},
		&core.GenericDiagnosticResult{Title: "timeout", Value: e.config.Timeout.String()},
		&core.GenericDiagnosticResult{Title: "configured", Value: e.client != nil},
	}
}
