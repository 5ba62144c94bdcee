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
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// internalRateLimiterStore uses a single token bucket for all callers of the protected paths.
// It should only be used for internal paths since it does not register the rate limit per caller.
type internalRateLimiterStore struct {
	limiter *rate.Limiter
}

// Allow checks whether the bucket still holds a token. It ignores the caller's identifier.
func (s *internalRateLimiterStore) Allow(_ string) (bool, error) {
	return s.limiter.Allow(), nil
}

func newInternalRateLimiterStore(limit rate.Limit, burst int) *internalRateLimiterStore {
	return &internalRateLimiterStore{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// NewInternalRateLimiter creates rate limiting middleware for the given paths, keyed by HTTP method.
// Paths are matched against the router path, so they may contain variables.
// Requests exceeding the limit fail with 429 Too Many Requests.
func NewInternalRateLimiter(protectedPaths map[string][]string, limit rate.Limit, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		// Returning true means skipping the middleware
		Skipper: func(c echo.Context) bool {
			for _, path := range protectedPaths[c.Request().Method] {
				if c.Path() == path {
					return false
				}
			}
			return true
		},
		IdentifierExtractor: func(_ echo.Context) (string, error) {
			return "", nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrExtractorError.Code,
				Message:  middleware.ErrExtractorError.Message,
				Internal: err,
			}
		},
		DenyHandler: func(_ echo.Context, _ string, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrRateLimitExceeded.Code,
				Message:  middleware.ErrRateLimitExceeded.Message,
				Internal: err,
			}
		},
		Store: newInternalRateLimiterStore(limit, burst),
	})
}
