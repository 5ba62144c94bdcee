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
package test

import (
	"testing"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/stretchr/testify/assert"
)

// AssertHTTPError asserts that the given error wraps a core.HttpError with the given status code and response body.
func AssertHTTPError(t *testing.T, actual error, statusCode int, responseBody string) bool {
	t.Helper()
	var httpErr core.HttpError
	if !assert.ErrorAs(t, actual, &httpErr) {
		return false
	}
	return assert.Equal(t, statusCode, httpErr.StatusCode) &&
		assert.Equal(t, responseBody, string(httpErr.ResponseBody))
}
