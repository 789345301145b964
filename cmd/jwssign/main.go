// Copyright 2025 OpenPubkey
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/openpubkey/jwssign/commands"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		body     string
		bodyFile string
		keyPath  string
		kid      string
		verbose  bool
	)

	root := &cobra.Command{
		Use:   "jwssign",
		Short: "Sign POST requests for the Payouts API with a detached ES512 JWS",
		Long: `jwssign signs a request body with an elliptic curve P-521 private key and
prints a JWS with a detached payload (header..signature) on stdout.

The body must be sent exactly as it was signed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodySet, bodyFileSet := cmd.Flags().Changed("body"), cmd.Flags().Changed("body-file")
			if !bodySet && !bodyFileSet {
				return fmt.Errorf("one of --body or --body-file is required")
			}

			keyID, err := commands.ParseKeyID(kid)
			if err != nil {
				return err
			}

			payload := []byte(body)
			if bodyFileSet {
				if payload, err = commands.ReadBody(bodyFile, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			signCmd := commands.SignCmd{
				KeyPath: keyPath,
				KeyID:   keyID,
				Body:    payload,
			}
			return signCmd.Run(cmd.OutOrStdout())
		},
	}

	root.Flags().StringVar(&body, "body", "", "The payload you want to sign")
	root.Flags().StringVar(&bodyFile, "body-file", "", "Read the payload from a file instead, - for stdin")
	root.Flags().StringVar(&keyPath, "key", "", "The filename of the elliptic curve P-521 private key used to sign, in PEM format")
	root.Flags().StringVar(&kid, "kid", "", "The certificate id of the public certificate uploaded to the console, used as the kid header")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.MarkFlagsMutuallyExclusive("body", "body-file")
	_ = root.MarkFlagRequired("key")
	_ = root.MarkFlagRequired("kid")

	return root
}
