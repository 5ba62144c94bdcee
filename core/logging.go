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
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldIssuerID is the log field key for the identifier of the remote credential issuer.
	LogFieldIssuerID = "issuerID"
	// LogFieldRequestID is the log field key for the correlation ID of a single outbound request.
	LogFieldRequestID = "requestID"
	// LogFieldHTTPStatus is the log field key for the HTTP status code returned by a remote server.
	LogFieldHTTPStatus = "httpStatus"
	// LogFieldErrorKind is the log field key for the classification of an error (e.g. transport, protocol).
	LogFieldErrorKind = "errorKind"
)

// configureLogging sets the level and formatter of the standard logrus logger.
func configureLogging(verbosity string, format string) error {
	lvl, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid formatter: '%s'", format)
	}
	return nil
}
