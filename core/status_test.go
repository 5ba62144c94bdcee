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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewStatusEngine_Routes(t *testing.T) {
	t.Run("Registers a single route for listing all engines", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := NewMockEchoServer(ctrl)

		router.EXPECT().GET("/status/diagnostics", gomock.Any())
		router.EXPECT().GET("/status", gomock.Any())

		NewStatusEngine(NewSystem()).(Routable).Routes(router)
	})
}

func TestNewStatusEngine_Diagnostics(t *testing.T) {
	system := NewSystem()
	system.RegisterEngine(NewStatusEngine(system))
	system.RegisterEngine(NewMetricsEngine())

	t.Run("diagnostics() returns engine list", func(t *testing.T) {
		ds := NewStatusEngine(system).(Diagnosable).Diagnostics()

		assert.Len(t, ds, 1)
		assert.Equal(t, "Registered engines", ds[0].Name())
		assert.Equal(t, "Status,Metrics", ds[0].String())
	})
	t.Run("diagnosticsOverview() renders text output of diagnostics", func(t *testing.T) {
		server := echo.New()
		NewStatusEngine(system).(Routable).Routes(server)
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "Status\n\tRegistered engines: Status,Metrics", recorder.Body.String())
	})
}

func TestStatusOK(t *testing.T) {
	server := echo.New()
	server.GET("/status", statusOK)
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func Test_engineName(t *testing.T) {
	assert.Equal(t, "Metrics", engineName(NewMetricsEngine()))
	assert.Equal(t, "struct {}", engineName(struct{}{}))
}
