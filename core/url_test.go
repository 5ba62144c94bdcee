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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURLPaths(t *testing.T) {
	assert.Equal(t, "", JoinURLPaths())
	assert.Equal(t, "http://test.test", JoinURLPaths("http://test.test"))
	assert.Equal(t, "http://test.test/path", JoinURLPaths("http://test.test", "path"))
	assert.Equal(t, "http://test.test/path", JoinURLPaths("http://test.test/", "/path"))
	assert.Equal(t, "http://test.test/a/b/c", JoinURLPaths("http://test.test/a/", "b", "", "/c"))
	assert.Equal(t, "http://test.test//a/b", JoinURLPaths("http://test.test//a", "b"))
}

func TestParseBaseURL(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		u, err := ParseBaseURL("https://agent.example.com/cloud-agent", true)

		require.NoError(t, err)
		assert.Equal(t, "agent.example.com", u.Host)
		assert.Equal(t, "/cloud-agent", u.Path)
	})
	t.Run("trailing fragment separator is dropped", func(t *testing.T) {
		u, err := ParseBaseURL("https://agent.example.com/agent#", true)

		require.NoError(t, err)
		assert.Equal(t, "https://agent.example.com/agent/nonces", JoinURLPaths(u.String(), "nonces"))
	})
	t.Run("http without strict mode", func(t *testing.T) {
		_, err := ParseBaseURL("http://localhost:8085", false)

		assert.NoError(t, err)
	})
	errorCases := []struct {
		input  string
		strict bool
		err    string
	}{
		{input: "", err: "URL missing scheme"},
		{input: "agent.example.com/path", err: "URL missing scheme"},
		{input: "http://agent.example.com", strict: true, err: "scheme must be https"},
		{input: "ftp://agent.example.com", err: "scheme must be http or https"},
		{input: "https://", err: "URL missing host"},
		{input: "https://agent.example.com#frag", err: "URL must not contain query or fragment"},
		{input: "https://agent.example.com?a=b", err: "URL must not contain query or fragment"},
		{input: "https://agent.example.com/agent?", err: "URL must not contain query or fragment"},
		{input: "https://agent.example.com:port", err: "invalid port"},
	}
	for _, tc := range errorCases {
		t.Run(tc.input, func(t *testing.T) {
			u, err := ParseBaseURL(tc.input, tc.strict)

			assert.Nil(t, u)
			assert.ErrorContains(t, err, tc.err)
		})
	}
}
