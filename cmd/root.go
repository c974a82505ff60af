// Copyright 2020 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sboehler/gledger/cmd/commands"
	"github.com/sboehler/gledger/cmd/flags"
)

// CreateCmd creates the root command.
func CreateCmd(version string) *cobra.Command {
	var logFlags flags.LogFlags

	c := &cobra.Command{
		Use:     "gledger",
		Short:   "gledger renders general ledger reports",
		Long:    `gledger renders the general ledger of exported accounting data, with running totals per account.`,
		Version: version,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logFlags.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	logFlags.Setup(c)
	c.AddCommand(commands.CreateGeneralLedgerCmd())
	c.AddCommand(commands.CreateCheckCommand())
	return c
}

// Execute runs the root command. This is called by main.main().
func Execute(version string) {
	c := CreateCmd(version)
	if err := c.Execute(); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		os.Exit(1)
	}
}
