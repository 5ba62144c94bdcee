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
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus"
	identusAPI "github.com/nuts-foundation/identus-nonce-client/identus/api/v1"
	identusCmd "github.com/nuts-foundation/identus-nonce-client/identus/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

var stdOutWriter io.Writer = os.Stdout

// Allows overriding Echo server implementation to aid testing
var echoCreator = func() core.EchoServer {
	return core.CreateEchoServer()
}

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "identus",
		Short: "Client for the OID4VCI nonce endpoint of Hyperledger Identus issuers.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(core.BuildInfo())
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the internal nonce API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context(), system)
		},
	}
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Infof("Build info: \n%s", core.BuildInfo())
	logrus.Infof("Config: \n%s", system.Config.PrintConfig())

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}
	if err := system.Start(); err != nil {
		return err
	}

	echoServer := echoCreator()
	if system.Config.HTTP.RateLimit > 0 {
		echoServer.Use(core.NewInternalRateLimiter(map[string][]string{
			http.MethodPost: {identusAPI.NoncePath},
		}, rate.Limit(system.Config.HTTP.RateLimit), system.Config.HTTP.RateLimitBurst))
	}
	for _, router := range system.Routers {
		router.Routes(echoServer)
	}
	startErr := make(chan error, 1)
	go func() {
		err := echoServer.Start(system.Config.HTTP.Address)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		logrus.Info("Shutting down...")
	case serverErr = <-startErr:
		logrus.WithError(serverErr).Error("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Unable to shut down HTTP server")
	}
	if err := system.Shutdown(); err != nil {
		return err
	}
	return serverErr
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.PersistentFlags().AddFlagSet(core.FlagSet())
	command.PersistentFlags().AddFlagSet(identusCmd.FlagSet())
	// Load all config and inject it into the engines, before running any command.
	command.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return system.Load(cmd.Flags())
	}
	command.AddCommand(createServerCommand(system))
	command.AddCommand(createPrintConfigCommand(system))
	command.AddCommand(createVersionCommand())
	command.AddCommand(identusCmd.Cmd(system))
	return command
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()
	// Create instances
	statusEngine := core.NewStatusEngine(system)
	metricsEngine := core.NewMetricsEngine()
	identusInstance := identus.New()

	// Register HTTP routes
	system.RegisterRoutes(statusEngine.(core.Routable))
	system.RegisterRoutes(metricsEngine.(core.Routable))
	system.RegisterRoutes(&identusAPI.Wrapper{Client: identusInstance})

	// Register engines
	system.RegisterEngine(statusEngine)
	system.RegisterEngine(metricsEngine)
	system.RegisterEngine(identusInstance)
	return system
}

// Execute executes the root command with the given system. It blocks until the command finished,
// for the server command that is when the given context is cancelled.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	command.SetOut(stdOutWriter)
	return command.ExecuteContext(ctx)
}
