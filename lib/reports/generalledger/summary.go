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

package generalledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
)

// Summary is the reconciliation of one rendered account.
type Summary struct {
	Account        *ledger.Account
	Initial, Final Amounts
	Lines          int

	// Expected is the opening balance plus the sum of the line balances.
	Expected decimal.Decimal
	// Rendered is the balance shown on the ending balance row.
	Rendered decimal.Decimal
	// Reconciled is set if exactly one ending balance row was rendered and
	// both the rendered and the final balance equal Expected.
	Reconciled bool
	// Unbalanced lists the indexes of lines whose balance is not
	// debit minus credit.
	Unbalanced []int
	// OutOfPeriod lists the indexes of lines dated outside the report
	// period.
	OutOfPeriod []int
}

// Summarize renders every account and reconciles the rendered ending
// balances.
func (rn *Renderer) Summarize(ctx context.Context, data *ledger.Data) ([]Summary, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	period := data.Params.Period()
	res := make([]Summary, 0, len(data.Accounts))
	for _, a := range data.Accounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			rec      Recorder
			snapshot Snapshot
			acc      = *rn
			ob       = data.Opening(a.ID)
			lines    = data.LinesOf(a.ID)
		)
		acc.OnAccount = func(_ *ledger.Account, s Snapshot) { snapshot = s }
		if err := acc.RenderAccount(a, ob, lines, &rec); err != nil {
			return nil, err
		}
		sum := rn.reconcile(a, ob, lines, &rec, snapshot)
		for i, l := range lines {
			if !period.Contains(l.Date) {
				sum.OutOfPeriod = append(sum.OutOfPeriod, i)
			}
		}
		res = append(res, sum)
	}
	return res, nil
}

// reconcile compares a recorded account section and its final snapshot
// with the balances summed from the data.
func (rn *Renderer) reconcile(a *ledger.Account, ob *ledger.OpeningBalance, lines []*ledger.Line, rec *Recorder, s Snapshot) Summary {
	sum := Summary{
		Account: a,
		Initial: s.Initial,
		Final:   s.Final,
		Lines:   len(lines),
	}
	if ob != nil {
		sum.Expected = ob.Balance
	}
	for i, l := range lines {
		sum.Expected = sum.Expected.Add(l.Balance)
		if !l.Balance.Equal(l.Debit.Sub(l.Credit)) {
			sum.Unbalanced = append(sum.Unbalanced, i)
		}
	}
	var ew endingWriter
	rec.Replay(&ew)
	col := rn.Schema.balanceColumn()
	if ew.rows != 1 || col < 0 || col >= len(ew.cells) {
		return sum
	}
	sum.Rendered = ew.cells[col].Amount
	sum.Reconciled = s.Finished &&
		s.Final.Balance.Equal(sum.Expected) &&
		sum.Rendered.Equal(sum.Expected)
	return sum
}

// endingWriter keeps the ending balance rows written to it.
type endingWriter struct {
	rows  int
	cells []Cell
}

func (*endingWriter) WriteTitle(string) {}

func (*endingWriter) WriteFilters([]ledger.Filter) {}

func (*endingWriter) WriteHeader([]Column) {}

func (*endingWriter) WriteSpacer(int) {}

func (ew *endingWriter) WriteRow(kind RowKind, cells []Cell) {
	if kind == EndingBalanceRow {
		ew.rows++
		ew.cells = cells
	}
}

// SummaryTable renders summaries as a table.
func SummaryTable(sums []Summary) *table.Table {
	tbl := table.New(1, 1, 4, 1)
	tbl.AddSeparatorRow()
	tbl.AddStyledRow(table.Header).
		AddText("Account", table.Center).
		AddText("Lines", table.Center).
		AddText("Initial", table.Center).
		AddText("Debit", table.Center).
		AddText("Credit", table.Center).
		AddText("Final", table.Center).
		AddText("Status", table.Center)
	tbl.AddSeparatorRow()
	var debit, credit, final decimal.Decimal
	for _, s := range sums {
		tbl.AddRow().
			AddText(s.Account.Title(), table.Left).
			AddText(fmt.Sprint(s.Lines), table.Right).
			AddNumber(s.Initial.Balance).
			AddNumber(s.Final.Debit).
			AddNumber(s.Final.Credit).
			AddNumber(s.Final.Balance).
			AddText(s.Status(), table.Left)
		debit, credit, final = debit.Add(s.Final.Debit), credit.Add(s.Final.Credit), final.Add(s.Final.Balance)
	}
	tbl.AddSeparatorRow()
	tbl.AddStyledRow(table.Bold).
		AddText("Total", table.Left).
		AddEmpty().
		AddEmpty().
		AddNumber(debit).
		AddNumber(credit).
		AddNumber(final).
		AddEmpty()
	tbl.AddSeparatorRow()
	return tbl
}

// Status describes the outcome of the reconciliation.
func (s Summary) Status() string {
	switch {
	case !s.Reconciled:
		return "MISMATCH"
	case len(s.Unbalanced) > 0:
		return fmt.Sprintf("%d unbalanced", len(s.Unbalanced))
	case len(s.OutOfPeriod) > 0:
		return fmt.Sprintf("%d out of period", len(s.OutOfPeriod))
	}
	return "ok"
}
