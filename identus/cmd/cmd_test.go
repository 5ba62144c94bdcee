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
	"net/http"
	"path/filepath"
	"testing"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus"
	testHTTP "github.com/nuts-foundation/identus-nonce-client/test/http"
	"github.com/nuts-foundation/identus-nonce-client/test/io"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestFlagSet(t *testing.T) {
	t.Run("Cobra help should list flags", func(t *testing.T) {
		cmd := newRootCommand()
		cmd.Flags().AddFlagSet(FlagSet())
		cmd.SetArgs([]string{"--help"})
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)

		_, err := cmd.ExecuteC()

		require.NoError(t, err)
		result := buf.String()
		assert.Contains(t, result, "--url")
		assert.Contains(t, result, "--issuerid")
		assert.Contains(t, result, "--timeout duration")
		assert.Contains(t, result, "--validateissuerstate")
	})
	t.Run("defaults", func(t *testing.T) {
		flags := FlagSet()

		assert.Equal(t, "5s", flags.Lookup("timeout").DefValue)
		assert.Equal(t, "true", flags.Lookup("validateissuerstate").DefValue)
	})
}

func newRootCommand() *cobra.Command {
	testRootCommand := &cobra.Command{
		Use: "root",
		Run: func(cmd *cobra.Command, args []string) {

		},
	}

	return testRootCommand
}

func newSystem() *core.System {
	system := core.NewSystem()
	system.RegisterEngine(identus.New())
	return system
}

// newTestCommand mirrors the root command: config is loaded into the system before a subcommand runs.
func newTestCommand(system *core.System) *cobra.Command {
	command := newRootCommand()
	command.PersistentFlags().AddFlagSet(core.FlagSet())
	command.PersistentFlags().AddFlagSet(FlagSet())
	command.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return system.Load(cmd.Flags())
	}
	command.AddCommand(Cmd(system))
	return command
}

func setupEnv(t *testing.T, issuerURL string) {
	testDirectory := io.TestDirectory(t)
	t.Setenv("IDENTUS_CONFIGFILE", filepath.Join(testDirectory, "identus.yaml"))
	t.Setenv("IDENTUS_DOTENVFILE", filepath.Join(testDirectory, ".env"))
	t.Setenv("IDENTUS_URL", issuerURL)
	t.Setenv("IDENTUS_ISSUERID", "issuer")
	t.Setenv("IDENTUS_STRICTMODE", "false")
}

func nonceCommand(t *testing.T, issuerURL string, args ...string) (*cobra.Command, *bytes.Buffer) {
	setupEnv(t, issuerURL)
	outBuf := new(bytes.Buffer)
	command := newTestCommand(newSystem())
	command.SetOut(outBuf)
	command.SetErr(new(bytes.Buffer))
	command.SetArgs(append([]string{"nonce"}, args...))
	return command, outBuf
}

func Test_requestCommand(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		handler := &testHTTP.Handler{StatusCode: http.StatusOK, ResponseData: `{"cNonce":"nonce","cNonceExpiresIn":60}`}
		server := testHTTP.StartIssuer(t, handler)
		cmd, output := nonceCommand(t, server.URL, "request", "state")

		err := cmd.Execute()

		require.NoError(t, err)
		assert.JSONEq(t, `{"cNonce":"nonce","cNonceExpiresIn":60}`, output.String())
		_, path := handler.Request()
		assert.Equal(t, "/oid4vci/issuers/issuer/nonces", path)
		assert.JSONEq(t, `{"issuerState":"state"}`, string(handler.RequestData()))
	})
	t.Run("base URL containing a comma", func(t *testing.T) {
		handler := &testHTTP.Handler{StatusCode: http.StatusOK, ResponseData: `{"cNonce":"nonce"}`}
		server := testHTTP.StartIssuer(t, handler)
		cmd, _ := nonceCommand(t, server.URL+"/a,b", "request", "state")

		err := cmd.Execute()

		require.NoError(t, err)
		_, path := handler.Request()
		assert.Equal(t, "/a,b/oid4vci/issuers/issuer/nonces", path)
	})
	t.Run("other issuer", func(t *testing.T) {
		handler := &testHTTP.Handler{StatusCode: http.StatusOK, ResponseData: `{"cNonce":"nonce"}`}
		server := testHTTP.StartIssuer(t, handler)
		cmd, _ := nonceCommand(t, server.URL, "request", "state", "--issuer", "other")

		err := cmd.Execute()

		require.NoError(t, err)
		_, path := handler.Request()
		assert.Equal(t, "/oid4vci/issuers/other/nonces", path)
	})
	t.Run("error responses are not retried", func(t *testing.T) {
		handler := &testHTTP.Handler{StatusCode: http.StatusServiceUnavailable, ResponseData: "try again later"}
		server := testHTTP.StartIssuer(t, handler)
		cmd, _ := nonceCommand(t, server.URL, "request", "state", "--retries", "3", "--retry-delay", "1ms")

		err := cmd.Execute()

		assert.ErrorIs(t, err, identus.ErrProtocol)
		assert.Equal(t, int64(1), handler.Calls.Load())
	})
	t.Run("invalid arguments are not retried", func(t *testing.T) {
		handler := &testHTTP.Handler{StatusCode: http.StatusOK, ResponseData: `{"cNonce":"nonce"}`}
		server := testHTTP.StartIssuer(t, handler)
		cmd, _ := nonceCommand(t, server.URL, "request", "", "--retries", "3", "--retry-delay", "1ms")

		err := cmd.Execute()

		assert.ErrorIs(t, err, identus.ErrInvalidArgument)
		assert.Equal(t, int64(0), handler.Calls.Load())
	})
	t.Run("transport errors are retried", func(t *testing.T) {
		calls := atomic.NewInt64(0)
		server := testHTTP.StartIssuer(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if calls.Inc() < 3 {
				// drop the connection without responding
				conn, _, err := writer.(http.Hijacker).Hijack()
				if err == nil {
					_ = conn.Close()
				}
				return
			}
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`{"cNonce":"third-time-lucky"}`))
		}))
		cmd, output := nonceCommand(t, server.URL, "request", "state", "--retries", "2", "--retry-delay", "1ms")

		err := cmd.Execute()

		require.NoError(t, err)
		assert.Contains(t, output.String(), "third-time-lucky")
		assert.Equal(t, int64(3), calls.Load())
	})
	t.Run("transport errors without retries", func(t *testing.T) {
		server := testHTTP.StartIssuer(t, &testHTTP.Handler{})
		serverURL := server.URL
		server.Close()
		cmd, _ := nonceCommand(t, serverURL, "request", "state")

		err := cmd.Execute()

		assert.ErrorIs(t, err, identus.ErrTransport)
	})
	t.Run("invalid configuration", func(t *testing.T) {
		cmd, _ := nonceCommand(t, "not a url", "request", "state")

		err := cmd.Execute()

		assert.ErrorIs(t, err, identus.ErrConfiguration)
	})
	t.Run("missing issuer state", func(t *testing.T) {
		cmd, _ := nonceCommand(t, "http://localhost", "request")

		err := cmd.Execute()

		assert.ErrorContains(t, err, "accepts 1 arg(s), received 0")
	})
}

func TestLoadClient(t *testing.T) {
	t.Run("uses the engine and config of the system", func(t *testing.T) {
		setupEnv(t, "https://agent.example.com")
		t.Setenv("IDENTUS_TIMEOUT", "2s")
		t.Setenv("IDENTUS_VALIDATEISSUERSTATE", "false")
		engine := identus.New()
		system := core.NewSystem()
		system.RegisterEngine(engine)
		command := newTestCommand(system)
		require.NoError(t, system.Load(command.PersistentFlags()))

		client, err := LoadClient(system)

		require.NoError(t, err)
		assert.Same(t, engine, client)
		config := client.Config().(*identus.Config)
		assert.Equal(t, "https://agent.example.com", config.URL)
		assert.Equal(t, "issuer", config.IssuerID)
		assert.Equal(t, "2s", config.Timeout.String())
		assert.False(t, config.ValidateIssuerState)
	})
	t.Run("config changes after loading are not picked up", func(t *testing.T) {
		setupEnv(t, "https://agent.example.com")
		system := newSystem()
		require.NoError(t, system.Load(newTestCommand(system).PersistentFlags()))
		t.Setenv("IDENTUS_URL", "https://other.example.com")

		client, err := LoadClient(system)

		require.NoError(t, err)
		assert.Equal(t, "https://agent.example.com", client.Config().(*identus.Config).URL)
	})
	t.Run("engine not registered", func(t *testing.T) {
		client, err := LoadClient(core.NewSystem())

		assert.ErrorIs(t, err, identus.ErrConfiguration)
		assert.Nil(t, client)
	})
}
