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
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus"
	"github.com/nuts-foundation/identus-nonce-client/test/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupEnv(t *testing.T) {
	testDirectory := io.TestDirectory(t)
	t.Setenv("IDENTUS_CONFIGFILE", filepath.Join(testDirectory, "identus.yaml"))
	t.Setenv("IDENTUS_DOTENVFILE", filepath.Join(testDirectory, ".env"))
	t.Setenv("IDENTUS_URL", "https://agent.example.com/cloud-agent")
	t.Setenv("IDENTUS_ISSUERID", "issuer")
}

func execute(t *testing.T, ctx context.Context, system *core.System, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	command := CreateCommand(system)
	command.SetOut(buf)
	command.SetErr(new(bytes.Buffer))
	command.SetArgs(args)
	err := command.ExecuteContext(ctx)
	return buf.String(), err
}

func Test_rootCmd(t *testing.T) {
	t.Run("no args prints help", func(t *testing.T) {
		setupEnv(t)
		oldStdout := stdOutWriter
		buf := new(bytes.Buffer)
		stdOutWriter = buf
		oldArgs := os.Args
		defer func() {
			stdOutWriter = oldStdout
			os.Args = oldArgs
		}()
		os.Args = []string{"identus"}

		err := Execute(context.Background(), CreateSystem())

		require.NoError(t, err)
		actual := buf.String()
		assert.Contains(t, actual, "Available Commands")
		assert.Contains(t, actual, "nonce")
		assert.Contains(t, actual, "server")
	})
	t.Run("config", func(t *testing.T) {
		setupEnv(t)

		output, err := execute(t, context.Background(), CreateSystem(), "config")

		require.NoError(t, err)
		assert.Contains(t, output, "Current system config")
		assert.Contains(t, output, "url: https://agent.example.com/cloud-agent")
		assert.Contains(t, output, "strictmode: true")
	})
	t.Run("version", func(t *testing.T) {
		setupEnv(t)

		output, err := execute(t, context.Background(), CreateSystem(), "version")

		require.NoError(t, err)
		assert.Contains(t, output, "Git version: ")
		assert.Contains(t, output, "OS/Arch: ")
	})
	t.Run("invalid logger format", func(t *testing.T) {
		setupEnv(t)

		_, err := execute(t, context.Background(), CreateSystem(), "version", "--loggerformat", "xml")

		assert.EqualError(t, err, "invalid formatter: 'xml'")
	})
}

func Test_serverCmd(t *testing.T) {
	oldEchoCreator := echoCreator
	t.Cleanup(func() {
		echoCreator = oldEchoCreator
	})
	expectRoutes := func(echoServer *core.MockEchoServer) {
		echoServer.EXPECT().Use(gomock.Any())
		echoServer.EXPECT().GET("/status", gomock.Any())
		echoServer.EXPECT().GET("/status/diagnostics", gomock.Any())
		echoServer.EXPECT().GET("/metrics", gomock.Any())
		echoServer.EXPECT().POST("/internal/identus/v1/nonce", gomock.Any(), gomock.Any())
	}
	t.Run("start in server mode", func(t *testing.T) {
		setupEnv(t)
		t.Setenv("IDENTUS_HTTP_ADDRESS", "localhost:1323")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ctrl := gomock.NewController(t)
		echoServer := core.NewMockEchoServer(ctrl)
		expectRoutes(echoServer)
		echoServer.EXPECT().Start("localhost:1323").DoAndReturn(func(_ string) error {
			cancel()
			return nil
		})
		echoServer.EXPECT().Shutdown(gomock.Any())
		echoCreator = func() core.EchoServer {
			return echoServer
		}
		system := CreateSystem()

		_, err := execute(t, ctx, system, "server")

		assert.NoError(t, err)
		assert.Contains(t, system.Config.HTTP.Address, "localhost:1323")
	})
	t.Run("rate limiting disabled", func(t *testing.T) {
		setupEnv(t)
		t.Setenv("IDENTUS_HTTP_RATELIMIT", "0")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ctrl := gomock.NewController(t)
		echoServer := core.NewMockEchoServer(ctrl)
		echoServer.EXPECT().GET(gomock.Any(), gomock.Any()).Times(3)
		echoServer.EXPECT().POST(gomock.Any(), gomock.Any(), gomock.Any())
		echoServer.EXPECT().Start(gomock.Any()).DoAndReturn(func(_ string) error {
			cancel()
			return nil
		})
		echoServer.EXPECT().Shutdown(gomock.Any())
		echoCreator = func() core.EchoServer {
			return echoServer
		}

		_, err := execute(t, ctx, CreateSystem(), "server")

		assert.NoError(t, err)
	})
	t.Run("invalid configuration", func(t *testing.T) {
		setupEnv(t)
		t.Setenv("IDENTUS_URL", "http://agent.example.com")
		ctrl := gomock.NewController(t)
		echoServer := core.NewMockEchoServer(ctrl)
		echoCreator = func() core.EchoServer {
			return echoServer
		}

		_, err := execute(t, context.Background(), CreateSystem(), "server")

		assert.ErrorIs(t, err, identus.ErrConfiguration)
		assert.ErrorContains(t, err, "scheme must be https")
	})
	t.Run("plain HTTP issuer allowed without strict mode", func(t *testing.T) {
		setupEnv(t)
		t.Setenv("IDENTUS_URL", "http://agent.example.com")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ctrl := gomock.NewController(t)
		echoServer := core.NewMockEchoServer(ctrl)
		expectRoutes(echoServer)
		echoServer.EXPECT().Start(gomock.Any()).DoAndReturn(func(_ string) error {
			cancel()
			return nil
		})
		echoServer.EXPECT().Shutdown(gomock.Any())
		echoCreator = func() core.EchoServer {
			return echoServer
		}

		_, err := execute(t, ctx, CreateSystem(), "server", "--strictmode=false")

		assert.NoError(t, err)
	})
	t.Run("HTTP server fails to start", func(t *testing.T) {
		setupEnv(t)
		ctrl := gomock.NewController(t)
		echoServer := core.NewMockEchoServer(ctrl)
		expectRoutes(echoServer)
		echoServer.EXPECT().Start(gomock.Any()).Return(errors.New("address already in use"))
		echoServer.EXPECT().Shutdown(gomock.Any())
		echoCreator = func() core.EchoServer {
			return echoServer
		}

		_, err := execute(t, context.Background(), CreateSystem(), "server")

		assert.EqualError(t, err, "address already in use")
	})
}

func TestCreateSystem(t *testing.T) {
	system := CreateSystem()

	var names []string
	system.VisitEngines(func(engine core.Engine) {
		names = append(names, engine.(core.Named).Name())
	})
	assert.Equal(t, []string{"Status", "Metrics", "Identus"}, names)
	assert.Len(t, system.Routers, 3)
}
