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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Problem is a helper struct to unmarshal RFC7807 problem responses written by the API.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// ParseProblem unmarshals the given response body as problem.
func ParseProblem(t *testing.T, data []byte) Problem {
	t.Helper()
	var result Problem
	require.NoError(t, json.Unmarshal(data, &result), "response is not a problem: %s", string(data))
	return result
}
