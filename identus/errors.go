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
	"errors"
)

// ErrConfiguration is returned when the client can't be constructed from the given configuration.
var ErrConfiguration = errors.New("invalid Identus client configuration")

// ErrInvalidArgument is returned when a nonce is requested with invalid input. No request is sent in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTransport is returned when the issuer could not be reached: connection failures, timeouts, TLS errors or cancellation.
var ErrTransport = errors.New("unable to reach issuer nonce endpoint")

// ErrProtocol is returned when the issuer responded with a non-2xx status.
// The error wraps a core.HttpError which holds the status code and response body.
var ErrProtocol = errors.New("issuer nonce endpoint returned an error")

// ErrDecode is returned when the issuer responded with a body that isn't a valid nonce response.
var ErrDecode = errors.New("invalid nonce response")

// Kind of errors, used as log field and metric label.
const (
	KindNone            = "success"
	KindConfiguration   = "configuration"
	KindInvalidArgument = "invalid_argument"
	KindTransport       = "transport"
	KindProtocol        = "protocol"
	KindDecode          = "decode"
	KindUnknown         = "unknown"
)

// ErrorKind classifies the given error returned by this package.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrProtocol):
		return KindProtocol
	case errors.Is(err, ErrDecode):
		return KindDecode
	default:
		return KindUnknown
	}
}
