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
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTimeout is the default time a single nonce exchange may take.
const DefaultTimeout = 5 * time.Second

// Config holds the configuration of the Identus nonce client.
// The properties live at the root of the configuration, so IDENTUS_URL maps to URL.
type Config struct {
	// URL is the base URL of the Identus cloud agent, e.g. https://agent.example.com/cloud-agent
	URL string `koanf:"url" validate:"required"`
	// IssuerID identifies the issuer whose nonce endpoint is called when no issuer is given explicitly.
	IssuerID string `koanf:"issuerid" validate:"required"`
	// Timeout bounds each nonce exchange, including connecting and reading the response.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	// ValidateIssuerState makes the client reject empty issuer states before sending a request.
	// Disabling it sends the issuer state as-is.
	ValidateIssuerState bool `koanf:"validateissuerstate"`
}

// DefaultConfig returns the default configuration. URL and IssuerID have no sensible default and must be configured.
func DefaultConfig() Config {
	return Config{
		Timeout:             DefaultTimeout,
		ValidateIssuerState: true,
	}
}

// Validate checks the configuration without parsing the URL.
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
