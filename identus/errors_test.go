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
	"fmt"
	"testing"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	cause := errors.New("cause")
	testCases := []struct {
		err  error
		kind string
	}{
		{err: nil, kind: KindNone},
		{err: core.WrapError(ErrConfiguration, cause), kind: KindConfiguration},
		{err: core.WrapError(ErrInvalidArgument, cause), kind: KindInvalidArgument},
		{err: core.WrapError(ErrTransport, cause), kind: KindTransport},
		{err: fmt.Errorf("request failed: %w", core.WrapError(ErrProtocol, cause)), kind: KindProtocol},
		{err: core.WrapError(ErrDecode, cause), kind: KindDecode},
		{err: cause, kind: KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.kind, func(t *testing.T) {
			assert.Equal(t, tc.kind, ErrorKind(tc.err))
		})
	}
}

func TestWrappedErrors(t *testing.T) {
	httpErr := core.HttpError{StatusCode: 503}
	err := core.WrapError(ErrProtocol, httpErr)

	assert.ErrorIs(t, err, ErrProtocol)
	assert.NotErrorIs(t, err, ErrDecode)
	var target core.HttpError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 503, target.StatusCode)
}
