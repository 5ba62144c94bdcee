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
	"encoding/json"
	"errors"
)

// NonceRequest is the body sent to the nonce endpoint of an issuer.
// It is immutable: the issuer state can only be set through NewNonceRequest.
type NonceRequest struct {
	issuerState string
}

// NewNonceRequest creates a NonceRequest for the given issuer state. The issuer state is passed through verbatim.
func NewNonceRequest(issuerState string) NonceRequest {
	return NonceRequest{issuerState: issuerState}
}

// IssuerState returns the opaque session correlator of the credential offer.
func (r NonceRequest) IssuerState() string {
	return r.issuerState
}

// MarshalJSON encodes the request as {"issuerState":"..."}.
func (r NonceRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IssuerState string `json:"issuerState"`
	}{IssuerState: r.issuerState})
}

// NonceResponse contains the nonce issued by the credential issuer.
type NonceResponse struct {
	// CNonce is the issued nonce, which the wallet must include in its proof of possession.
	CNonce string `json:"cNonce"`
	// CNonceExpiresIn is the lifetime of the nonce in seconds. Nil means the issuer did not communicate an expiry.
	CNonceExpiresIn *int `json:"cNonceExpiresIn,omitempty"`
}

// parseNonceResponse decodes and checks a nonce endpoint response body.
// It never returns a partially populated response.
func parseNonceResponse(data []byte) (*NonceResponse, error) {
	// Decode into pointers first, so a missing cNonce can be told apart from an empty one.
	var raw struct {
		CNonce          *string `json:"cNonce"`
		CNonceExpiresIn *int    `json:"cNonceExpiresIn"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.CNonce == nil {
		return nil, errors.New("cNonce is missing")
	}
	if *raw.CNonce == "" {
		return nil, errors.New("cNonce is empty")
	}
	if raw.CNonceExpiresIn != nil && *raw.CNonceExpiresIn < 0 {
		return nil, errors.New("cNonceExpiresIn is negative")
	}
	return &NonceResponse{
		CNonce:          *raw.CNonce,
		CNonceExpiresIn: raw.CNonceExpiresIn,
	}, nil
}
