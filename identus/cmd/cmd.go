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
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/identus-nonce-client/core"
	"github.com/nuts-foundation/identus-nonce-client/identus"
	"github.com/nuts-foundation/identus-nonce-client/identus/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the nonce client.
func FlagSet() *pflag.FlagSet {
	defs := identus.DefaultConfig()
	flags := pflag.NewFlagSet("identus", pflag.ContinueOnError)
	flags.String("url", defs.URL, "Base URL of the Identus cloud agent, e.g. https://agent.example.com/cloud-agent. "+
		"Nonces are requested at <url>/oid4vci/issuers/<issuerid>/nonces.")
	flags.String("issuerid", defs.IssuerID, "ID of the issuer to request nonces from, unless a request specifies another issuer.")
	flags.Duration("timeout", defs.Timeout, "Maximum duration of a single nonce request, in Golang time.Duration string format (e.g. 5s).")
	flags.Bool("validateissuerstate", defs.ValidateIssuerState, "When set, nonce requests with an empty issuer state are rejected without contacting the issuer.")
	return flags
}

// Cmd contains the CLI commands of the nonce client.
// The commands use the nonce client engine registered in the given system, which must be loaded before they run.
func Cmd(system *core.System) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Nonce commands",
	}
	cmd.AddCommand(requestCommand(system))
	return cmd
}

func requestCommand(system *core.System) *cobra.Command {
	var issuerID string
	var retries uint
	var retryDelay time.Duration
	cmd := &cobra.Command{
		Use:   "request [issuerState]",
		Short: "Requests a nonce from the issuer for the given issuer state, and prints it as JSON.",
		Long: "Requests a nonce from the issuer for the given issuer state, and prints it as JSON. " +
			"Only failures to reach the issuer are retried: error responses and invalid responses are returned immediately.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := LoadClient(system)
			if err != nil {
				return err
			}
			issuerState := args[0]
			response, err := retry.DoWithData(func() (*identus.NonceResponse, error) {
				if issuerID == "" {
					return client.RequestNonce(cmd.Context(), issuerState)
				}
				return client.RequestNonceForIssuer(cmd.Context(), issuerID, issuerState)
			},
				retry.Context(cmd.Context()),
				retry.Attempts(retries+1),
				retry.Delay(retryDelay),
				retry.DelayType(retry.BackOffDelay),
				retry.LastErrorOnly(true),
				retry.RetryIf(func(err error) bool {
					return errors.Is(err, identus.ErrTransport)
				}),
				retry.OnRetry(func(attempt uint, err error) {
					log.Logger().WithError(err).Warnf("Nonce request failed, retrying (attempt=%d)", attempt+1)
				}),
			)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&issuerID, "issuer", "", "ID of the issuer to request the nonce from. Defaults to the configured issuerid.")
	cmd.Flags().UintVar(&retries, "retries", 0, "Number of times a request is retried when the issuer can't be reached.")
	cmd.Flags().DurationVar(&retryDelay, "retry-delay", 500*time.Millisecond, "Initial delay between retries, doubled after every attempt.")
	return cmd
}

// LoadClient returns the nonce client engine registered in the given system, configured with the configuration the system already loaded.
func LoadClient(system *core.System) (*identus.Engine, error) {
	var instance *identus.Engine
	system.VisitEngines(func(engine core.Engine) {
		if e, ok := engine.(*identus.Engine); ok {
			instance = e
		}
	})
	if instance == nil {
		return nil, core.WrapError(identus.ErrConfiguration, errors.New("nonce client engine not registered"))
	}
	if err := instance.Configure(*system.Config); err != nil {
		return nil, err
	}
	return instance, nil
}
