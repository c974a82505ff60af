// Copyright 2026 Silvio Böhler
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
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cheggaaa/pb/v3"
	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sboehler/gledger/cmd/flags"
	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
	"github.com/sboehler/gledger/lib/reports/generalledger"
)

// CreateGeneralLedgerCmd creates the command.
func CreateGeneralLedgerCmd() *cobra.Command {

	var r generalLedgerRunner

	c := &cobra.Command{
		Use:   "general-ledger <file>",
		Short: "create a general ledger",
		Long:  `Render the general ledger of the given data file, one section per account with running totals.`,
		Args:  cobra.ExactArgs(1),
		Run:   r.run,
	}
	r.setupFlags(c)
	return c
}

type generalLedgerRunner struct {
	flags.ParamsFlags

	// input
	encoding flags.EncodingFlag

	// output
	format   flags.FormatFlag
	output   string
	currency bool
	jobs     int
	progress bool

	// formatting
	thousands, color bool
	digits           int32
}

func (r *generalLedgerRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%+v\n", err)
		os.Exit(1)
	}
}

func (r *generalLedgerRunner) setupFlags(c *cobra.Command) {
	r.ParamsFlags.Setup(c)
	c.Flags().Var(&r.encoding, "encoding", "encoding of the data file")
	c.Flags().Var(&r.format, "format", "output format, inferred from --output if not set")
	c.Flags().StringVarP(&r.output, "output", "o", "", "write the report to a file")
	c.Flags().BoolVar(&r.currency, "currency", false, "show currency columns")
	c.Flags().IntVar(&r.jobs, "jobs", runtime.NumCPU(), "number of accounts rendered concurrently")
	c.Flags().BoolVar(&r.progress, "progress", false, "show a progress bar")
	c.Flags().Int32Var(&r.digits, "digits", 2, "round to number of digits")
	c.Flags().BoolVarP(&r.thousands, "thousands", "k", false, "show numbers in units of 1000")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *generalLedgerRunner) execute(cmd *cobra.Command, args []string) error {
	var (
		ctx = cmd.Context()
		log = zerolog.Ctx(ctx)
	)
	data, err := ledger.FromPath(args[0], r.encoding.Value())
	if err != nil {
		return err
	}
	r.ParamsFlags.Apply(cmd, &data.Params)
	log.Info().
		Str("file", args[0]).
		Int("accounts", len(data.Accounts)).
		Str("from", date.Format(data.Params.DateFrom)).
		Str("to", date.Format(data.Params.DateTo)).
		Msg("loaded ledger data")

	schema := generalledger.DefaultSchema()
	if r.currency {
		schema = generalledger.CurrencySchema()
	}
	rn, err := generalledger.NewRenderer(schema)
	if err != nil {
		return err
	}
	rn.Jobs = r.jobs

	var bar *pb.ProgressBar
	if r.progress {
		bar = pb.New(len(data.Accounts)).SetWriter(cmd.ErrOrStderr()).Start()
		defer bar.Finish()
	}
	rn.OnAccount = func(a *ledger.Account, s generalledger.Snapshot) {
		log.Debug().
			Str("account", a.Code).
			Stringer("debit", s.Final.Debit).
			Stringer("credit", s.Final.Credit).
			Stringer("balance", s.Final.Balance).
			Msg("rendered account")
		if bar != nil {
			bar.Increment()
		}
	}

	tw := generalledger.NewTableWriter(schema)
	if err := rn.Render(ctx, data, tw); err != nil {
		return err
	}
	return r.write(cmd, tw.Table)
}

type tableRenderer interface {
	Render(*table.Table, io.Writer) error
}

func (r *generalLedgerRunner) renderer() tableRenderer {
	switch r.format.ValueFor(r.output) {
	case flags.CSV:
		return &table.CSVRenderer{Round: r.digits}
	case flags.XLSX:
		return &table.XLSXRenderer{Sheet: generalledger.ReportName, Round: r.digits}
	}
	return &table.TextRenderer{
		Color:     r.color,
		Thousands: r.thousands,
		Round:     r.digits,
	}
}

func (r *generalLedgerRunner) write(cmd *cobra.Command, tbl *table.Table) error {
	if r.output == "" {
		out := bufio.NewWriter(cmd.OutOrStdout())
		if err := r.renderer().Render(tbl, out); err != nil {
			return err
		}
		return out.Flush()
	}
	var buf bytes.Buffer
	if err := r.renderer().Render(tbl, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(r.output, &buf); err != nil {
		return err
	}
	zerolog.Ctx(cmd.Context()).Info().Str("output", r.output).Msg("wrote report")
	return nil
}
