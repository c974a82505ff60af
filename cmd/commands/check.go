// Copyright 2021 Silvio Böhler
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

package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sboehler/gledger/cmd/flags"
	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
	"github.com/sboehler/gledger/lib/reports/generalledger"
)

// CreateCheckCommand creates the command.
func CreateCheckCommand() *cobra.Command {

	var r checkRunner

	c := &cobra.Command{
		Use:   "check <file>",
		Short: "check the ledger data",
		Long:  `Validate the ledger data and reconcile the running totals of every account.`,
		Args:  cobra.ExactArgs(1),
		Run:   r.run,
	}
	r.setupFlags(c)
	return c
}

type checkRunner struct {
	encoding flags.EncodingFlag
	format   flags.FormatFlag
	color    bool
	digits   int32
}

func (r *checkRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
		os.Exit(1)
	}
}

func (r *checkRunner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.encoding, "encoding", "encoding of the data file")
	c.Flags().Var(&r.format, "format", "output format (text or csv)")
	c.Flags().Int32Var(&r.digits, "digits", 2, "round to number of digits")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *checkRunner) execute(cmd *cobra.Command, args []string) error {
	log := zerolog.Ctx(cmd.Context())
	data, err := ledger.FromPath(args[0], r.encoding.Value())
	if err != nil {
		return err
	}
	rn, err := generalledger.NewRenderer(generalledger.DefaultSchema())
	if err != nil {
		return err
	}
	sums, err := rn.Summarize(cmd.Context(), data)
	if err != nil {
		return err
	}
	var mismatches int
	for _, s := range sums {
		lines := data.LinesOf(s.Account.ID)
		for _, i := range s.Unbalanced {
			log.Warn().
				Str("account", s.Account.Code).
				Int("line", i).
				Str("move", lines[i].MoveName).
				Msg("balance is not debit minus credit")
		}
		for _, i := range s.OutOfPeriod {
			log.Warn().
				Str("account", s.Account.Code).
				Int("line", i).
				Time("date", lines[i].Date).
				Msg("line outside the report period")
		}
		if !s.Reconciled {
			log.Error().
				Str("account", s.Account.Code).
				Stringer("expected", s.Expected).
				Stringer("rendered", s.Rendered).
				Msg("ending balance does not reconcile")
			mismatches++
		}
	}
	if err := r.render(cmd, generalledger.SummaryTable(sums)); err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("%d account(s) do not reconcile", mismatches)
	}
	return nil
}

func (r *checkRunner) render(cmd *cobra.Command, tbl *table.Table) error {
	out := bufio.NewWriter(cmd.OutOrStdout())
	var err error
	switch f := r.format.ValueFor(""); f {
	case flags.Text:
		tr := table.TextRenderer{Color: r.color, Round: r.digits}
		err = tr.Render(tbl, out)
	case flags.CSV:
		cr := table.CSVRenderer{Round: r.digits}
		err = cr.Render(tbl, out)
	default:
		err = fmt.Errorf("format %s is not supported by check", f)
	}
	if err != nil {
		return err
	}
	return out.Flush()
}
