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

package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus"
)

const moduleName = "Identus"

// NoncePath is the path of the operation that requests a nonce.
const NoncePath = "/internal/identus/v1/nonce"

var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)
var _ core.Routable = (*Wrapper)(nil)

// RequestNonceRequest is the body of a nonce request.
type RequestNonceRequest struct {
	// IssuerState is the issuer state taken from the credential offer.
	IssuerState string `json:"issuerState"`
	// IssuerID optionally overrides the configured issuer.
	IssuerID string `json:"issuerId,omitempty"`
}

// Wrapper exposes the nonce client over HTTP for hosts that don't embed it.
type Wrapper struct {
	Client identus.Client
}

// ResolveStatusCode maps errors returned by this API to specific HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return core.ResolveStatusCode(err, map[error]int{
		identus.ErrInvalidArgument: http.StatusBadRequest,
		identus.ErrConfiguration:   http.StatusServiceUnavailable,
		identus.ErrTransport:       http.StatusBadGateway,
		identus.ErrProtocol:        http.StatusBadGateway,
		identus.ErrDecode:          http.StatusBadGateway,
	})
}

func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST(NoncePath, w.RequestNonce, w.operation("RequestNonce"))
}

func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, moduleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			return next(ctx)
		}
	}
}

// RequestNonce requests a nonce for the given issuer state and returns it as-is.
func (w *Wrapper) RequestNonce(ctx echo.Context) error {
	var request RequestNonceRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	var response *identus.NonceResponse
	var err error
	if request.IssuerID == "" {
		response, err = w.Client.RequestNonce(ctx.Request().Context(), request.IssuerState)
	} else {
		response, err = w.Client.RequestNonceForIssuer(ctx.Request().Context(), request.IssuerID, request.IssuerState)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}
