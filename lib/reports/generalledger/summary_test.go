package generalledger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
)

func TestSummarize(t *testing.T) {
	data := scenarioData()
	data.Lines[2] = []*ledger.Line{
		{Date: date.Date(2024, 3, 1), Debit: dec("10"), Balance: dec("10")},
		{Date: date.Date(2025, 1, 3), Debit: dec("5"), Credit: dec("1"), Balance: dec("3")},
	}
	rn, _ := NewRenderer(DefaultSchema())

	got, err := rn.Summarize(context.Background(), data)

	if err != nil {
		t.Fatalf("rn.Summarize() returned unexpected error: %v", err)
	}
	want := []Summary{
		{
			Account:    data.Accounts[0],
			Initial:    Amounts{Debit: dec("100"), Balance: dec("100")},
			Final:      Amounts{Debit: dec("150"), Credit: dec("30"), Balance: dec("120")},
			Lines:      2,
			Expected:   dec("120"),
			Rendered:   dec("120"),
			Reconciled: true,
		},
		{
			Account:     data.Accounts[1],
			Final:       Amounts{Debit: dec("15"), Credit: dec("1"), Balance: dec("13")},
			Lines:       2,
			Expected:    dec("13"),
			Rendered:    dec("13"),
			Reconciled:  true,
			Unbalanced:  []int{1},
			OutOfPeriod: []int{1},
		},
	}
	if diff := cmp.Diff(want, got, decimalComparer, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected summaries (-want/+got):\n%s", diff)
	}
	if got, want := got[1].Status(), "1 unbalanced"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
}

func TestSummarizeInvalidData(t *testing.T) {
	data := scenarioData()
	data.OpeningBalances[9] = &ledger.OpeningBalance{}
	rn, _ := NewRenderer(DefaultSchema())

	if _, err := rn.Summarize(context.Background(), data); err == nil {
		t.Fatalf("rn.Summarize() returned no error")
	}
}

func TestSummarizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rn, _ := NewRenderer(DefaultSchema())

	if _, err := rn.Summarize(ctx, scenarioData()); !errors.Is(err, context.Canceled) {
		t.Fatalf("rn.Summarize() returned %v, want context.Canceled", err)
	}
}

func TestReconcile(t *testing.T) {
	var (
		rn, _ = NewRenderer(DefaultSchema())
		data  = scenarioData()
		a     = data.Accounts[0]
		ob    = data.Opening(a.ID)
		lines = data.LinesOf(a.ID)
	)
	ending := func(balance string) []Cell {
		cells := make([]Cell, len(rn.Schema.Columns))
		cells[rn.Schema.balanceColumn()] = amountCell(dec(balance))
		return cells
	}
	tests := []struct {
		name      string
		rows      [][]Cell
		final     string
		finished  bool
		want      bool
		wantState string
	}{
		{
			name:      "reconciled",
			rows:      [][]Cell{ending("120")},
			final:     "120",
			finished:  true,
			want:      true,
			wantState: "ok",
		},
		{
			name:      "rendered balance off",
			rows:      [][]Cell{ending("119")},
			final:     "120",
			finished:  true,
			wantState: "MISMATCH",
		},
		{
			name:      "final balance off",
			rows:      [][]Cell{ending("120")},
			final:     "121",
			finished:  true,
			wantState: "MISMATCH",
		},
		{
			name:      "not finished",
			rows:      [][]Cell{ending("120")},
			final:     "120",
			wantState: "MISMATCH",
		},
		{
			name:      "no ending row",
			final:     "120",
			finished:  true,
			wantState: "MISMATCH",
		},
		{
			name:      "two ending rows",
			rows:      [][]Cell{ending("120"), ending("120")},
			final:     "120",
			finished:  true,
			wantState: "MISMATCH",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var rec Recorder
			rec.WriteTitle(a.Title())
			for _, cells := range test.rows {
				rec.WriteRow(EndingBalanceRow, cells)
			}
			s := Snapshot{
				Account:  a,
				Final:    Amounts{Balance: dec(test.final)},
				Finished: test.finished,
			}

			got := rn.reconcile(a, ob, lines, &rec, s)

			if got.Reconciled != test.want {
				t.Errorf("Reconciled = %t, want %t", got.Reconciled, test.want)
			}
			if !got.Expected.Equal(dec("120")) {
				t.Errorf("Expected = %s, want 120", got.Expected)
			}
			if got.Status() != test.wantState {
				t.Errorf("Status() = %q, want %q", got.Status(), test.wantState)
			}
		})
	}
}

func TestSummaryStatus(t *testing.T) {
	tests := []struct {
		s    Summary
		want string
	}{
		{Summary{Reconciled: true}, "ok"},
		{Summary{Reconciled: true, Unbalanced: []int{0, 2}}, "2 unbalanced"},
		{Summary{Reconciled: true, OutOfPeriod: []int{1}}, "1 out of period"},
		{Summary{Unbalanced: []int{0}}, "MISMATCH"},
	}
	for _, test := range tests {
		if got := test.s.Status(); got != test.want {
			t.Errorf("%+v: Status() = %q, want %q", test.s, got, test.want)
		}
	}
}

func TestSummaryTable(t *testing.T) {
	data := scenarioData()
	data.Lines[2] = []*ledger.Line{{Date: date.Date(2024, 6, 1), Debit: dec("5"), Balance: dec("4")}}
	rn, _ := NewRenderer(DefaultSchema())
	sums, err := rn.Summarize(context.Background(), data)
	if err != nil {
		t.Fatalf("rn.Summarize() returned unexpected error: %v", err)
	}
	var (
		buf bytes.Buffer
		r   = table.CSVRenderer{Round: 2}
	)

	if err := r.Render(SummaryTable(sums), &buf); err != nil {
		t.Fatalf("r.Render() returned unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Account,Lines,Initial,Debit,Credit,Final,Status",
		"A1 - Account A,2,100.00,150.00,30.00,120.00,ok",
		"B1 - Account B,1,0.00,5.00,0.00,4.00,1 unbalanced",
		"Total,,,155.00,30.00,124.00,",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected summary table (-want/+got):\n%s", diff)
	}
}
