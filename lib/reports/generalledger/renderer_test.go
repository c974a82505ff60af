package generalledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"

	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
)

type event struct {
	Op    string
	Text  string
	Kind  RowKind
	Cells []Cell
	N     int
}

type eventWriter struct {
	events []event
}

func (w *eventWriter) WriteTitle(title string) {
	w.events = append(w.events, event{Op: "title", Text: title})
}

func (w *eventWriter) WriteFilters(filters []ledger.Filter) {
	w.events = append(w.events, event{Op: "filters", N: len(filters)})
}

func (w *eventWriter) WriteHeader(cols []Column) {
	w.events = append(w.events, event{Op: "header", N: len(cols)})
}

func (w *eventWriter) WriteRow(kind RowKind, cells []Cell) {
	w.events = append(w.events, event{Op: "row", Kind: kind, Cells: cells})
}

func (w *eventWriter) WriteSpacer(n int) {
	w.events = append(w.events, event{Op: "spacer", N: n})
}

// rows returns "<kind> <cumulative balance>" for every data row.
func (w *eventWriter) rows() []string {
	var res []string
	for _, e := range w.events {
		if e.Op == "row" {
			res = append(res, fmt.Sprintf("%s %s", e.Kind, e.Cells[10].Amount.StringFixed(2)))
		}
	}
	return res
}

// ops returns the operations without row details.
func (w *eventWriter) ops() []string {
	var res []string
	for _, e := range w.events {
		switch e.Op {
		case "title":
			res = append(res, "title "+e.Text)
		case "row":
			res = append(res, "row "+e.Kind.String())
		case "spacer":
			res = append(res, fmt.Sprintf("spacer %d", e.N))
		default:
			res = append(res, e.Op)
		}
	}
	return res
}

func scenarioData() *ledger.Data {
	return &ledger.Data{
		Params: ledger.Params{
			DateFrom: date.Date(2024, 1, 1),
			DateTo:   date.Date(2024, 12, 31),
		},
		Accounts: []*ledger.Account{
			{ID: 1, Code: "A1", Name: "Account A"},
			{ID: 2, Code: "B1", Name: "Account B"},
		},
		OpeningBalances: map[int]*ledger.OpeningBalance{
			1: {Debit: dec("100"), Balance: dec("100")},
		},
		Lines: map[int][]*ledger.Line{
			1: {
				{
					Date:          date.Date(2024, 1, 5),
					PeriodCode:    "01/2024",
					MoveName:      "MOVE1",
					JournalCode:   "BNK",
					PartnerName:   "ACME",
					Name:          "Invoice",
					InvoiceNumber: "INV001",
					Counterparts:  "400",
					Credit:        dec("30"),
					Balance:       dec("-30"),
				},
				{
					Date:        date.Date(2024, 2, 1),
					PeriodCode:  "02/2024",
					MoveName:    "MOVE2",
					JournalCode: "BNK",
					Name:        "Payment",
					Debit:       dec("50"),
					Balance:     dec("50"),
				},
			},
		},
	}
}

func TestRenderScenario(t *testing.T) {
	var (
		w     eventWriter
		rn, _ = NewRenderer(DefaultSchema())
	)

	if err := rn.Render(context.Background(), scenarioData(), &w); err != nil {
		t.Fatalf("rn.Render() returned unexpected error: %v", err)
	}

	wantOps := []string{
		"title General Ledger", "filters", "spacer 1",
		"title A1 - Account A", "header", "row initial", "row line", "row line", "row ending", "spacer 2",
		"title B1 - Account B", "header", "row ending", "spacer 2",
	}
	if diff := cmp.Diff(wantOps, w.ops()); diff != "" {
		t.Fatalf("unexpected operations (-want/+got):\n%s", diff)
	}
	wantRows := []string{
		"initial 100.00", "line 70.00", "line 120.00", "ending 120.00",
		"ending 0.00",
	}
	if diff := cmp.Diff(wantRows, w.rows()); diff != "" {
		t.Fatalf("unexpected rows (-want/+got):\n%s", diff)
	}
}

func TestRenderBalanceRows(t *testing.T) {
	var (
		w     eventWriter
		rn, _ = NewRenderer(DefaultSchema())
	)

	if err := rn.Render(context.Background(), scenarioData(), &w); err != nil {
		t.Fatalf("rn.Render() returned unexpected error: %v", err)
	}

	var rows [][]Cell
	for _, e := range w.events {
		if e.Op == "row" && e.Kind != LineRow {
			rows = append(rows, e.Cells)
		}
	}
	blank := blankCell(Text)
	want := [][]Cell{
		{
			blank, blank, blank, blank, textCell("A1"), textCell("Initial balance"), blank, blank,
			amountCell(dec("100")), amountCell(dec("0")), amountCell(dec("100")),
		},
		{
			{Kind: Text, Text: "A1 - Account A", Span: 5}, blank, blank, blank, blank, textCell("Ending balance"), blank, blank,
			amountCell(dec("150")), amountCell(dec("30")), amountCell(dec("120")),
		},
		{
			{Kind: Text, Text: "B1 - Account B", Span: 5}, blank, blank, blank, blank, textCell("Ending balance"), blank, blank,
			amountCell(dec("0")), amountCell(dec("0")), amountCell(dec("0")),
		},
	}
	if diff := cmp.Diff(want, rows, decimalComparer); diff != "" {
		t.Fatalf("unexpected balance rows (-want/+got):\n%s", diff)
	}
}

func TestRenderPreservesOrder(t *testing.T) {
	data := &ledger.Data{
		Accounts: []*ledger.Account{{ID: 1, Code: "1000", Name: "Cash"}},
		Lines: map[int][]*ledger.Line{
			1: {
				{Date: date.Date(2024, 3, 1), MoveName: "C"},
				{Date: date.Date(2024, 1, 1), MoveName: "A"},
				{Date: date.Date(2024, 2, 1), MoveName: "B"},
			},
		},
	}
	var (
		w     eventWriter
		rn, _ = NewRenderer(DefaultSchema())
	)

	if err := rn.Render(context.Background(), data, &w); err != nil {
		t.Fatalf("rn.Render() returned unexpected error: %v", err)
	}

	var got []string
	for _, e := range w.events {
		if e.Op == "row" && e.Kind == LineRow {
			got = append(got, e.Cells[2].Text)
		}
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, got); diff != "" {
		t.Fatalf("unexpected line order (-want/+got):\n%s", diff)
	}
}

func randomData(seed int64, accounts int) *ledger.Data {
	var (
		rnd  = rand.New(rand.NewSource(seed))
		data = &ledger.Data{
			OpeningBalances: make(map[int]*ledger.OpeningBalance),
			Lines:           make(map[int][]*ledger.Line),
		}
		amount = func() decimal.Decimal {
			return decimal.New(rnd.Int63n(1000000), -2)
		}
	)
	for id := 1; id <= accounts; id++ {
		data.Accounts = append(data.Accounts, &ledger.Account{ID: id, Code: fmt.Sprint(1000 + id), Name: fmt.Sprintf("Account %d", id)})
		if rnd.Intn(2) == 0 {
			d, c := amount(), amount()
			data.OpeningBalances[id] = &ledger.OpeningBalance{Debit: d, Credit: c, Balance: d.Sub(c)}
		}
		for i := rnd.Intn(20); i > 0; i-- {
			var l ledger.Line
			if rnd.Intn(2) == 0 {
				l.Debit = amount()
			} else {
				l.Credit = amount()
			}
			l.Balance = l.Debit.Sub(l.Credit)
			l.MoveName = fmt.Sprintf("M%d", i)
			data.Lines[id] = append(data.Lines[id], &l)
		}
	}
	return data
}

func TestRenderReconciles(t *testing.T) {
	var (
		data  = randomData(1, 50)
		rn, _ = NewRenderer(DefaultSchema())
		w     eventWriter
		final = make(map[int]decimal.Decimal)
	)
	rn.OnAccount = func(a *ledger.Account, s Snapshot) {
		final[a.ID] = s.Final.Balance
	}

	if err := rn.Render(context.Background(), data, &w); err != nil {
		t.Fatalf("rn.Render() returned unexpected error: %v", err)
	}

	var endings []decimal.Decimal
	for _, e := range w.events {
		if e.Op == "row" && e.Kind == EndingBalanceRow {
			endings = append(endings, e.Cells[10].Amount)
		}
	}
	if len(endings) != len(data.Accounts) {
		t.Fatalf("got %d ending balance rows, want %d", len(endings), len(data.Accounts))
	}
	for i, a := range data.Accounts {
		want := decimal.Zero
		if ob := data.Opening(a.ID); ob != nil {
			want = ob.Balance
		}
		for _, l := range data.LinesOf(a.ID) {
			want = want.Add(l.Balance)
		}
		if !final[a.ID].Equal(want) {
			t.Errorf("%s: final balance %v, want %v", a, final[a.ID], want)
		}
		if !endings[i].Equal(want) {
			t.Errorf("%s: ending balance row shows %v, want %v", a, endings[i], want)
		}
	}
}

func TestRenderParallel(t *testing.T) {
	data := randomData(2, 40)
	render := func(jobs int) string {
		rn, err := NewRenderer(CurrencySchema())
		if err != nil {
			t.Fatalf("NewRenderer() returned unexpected error: %v", err)
		}
		rn.Jobs = jobs
		tw := NewTableWriter(rn.Schema)
		if err := rn.Render(context.Background(), data, tw); err != nil {
			t.Fatalf("rn.Render() returned unexpected error: %v", err)
		}
		var buf bytes.Buffer
		r := table.TextRenderer{Round: 2}
		if err := r.Render(tw.Table, &buf); err != nil {
			t.Fatalf("r.Render() returned unexpected error: %v", err)
		}
		return buf.String()
	}

	want := render(1)
	for _, jobs := range []int{2, 8} {
		if diff := cmp.Diff(want, render(jobs)); diff != "" {
			t.Fatalf("jobs=%d: output differs from sequential rendering (-want/+got):\n%s", jobs, diff)
		}
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rn, _ := NewRenderer(DefaultSchema())

	for _, jobs := range []int{1, 4} {
		rn.Jobs = jobs
		if err := rn.Render(ctx, scenarioData(), &eventWriter{}); !errors.Is(err, context.Canceled) {
			t.Errorf("jobs=%d: rn.Render() returned %v, want context.Canceled", jobs, err)
		}
	}
}

func TestRenderInvalidData(t *testing.T) {
	data := scenarioData()
	data.Lines[7] = []*ledger.Line{{}}
	rn, _ := NewRenderer(DefaultSchema())
	var w eventWriter

	if err := rn.Render(context.Background(), data, &w); err == nil {
		t.Fatalf("rn.Render() returned no error")
	}
	if len(w.events) > 0 {
		t.Errorf("rn.Render() wrote %d events for invalid data", len(w.events))
	}
}

func TestWriteEndingBalance(t *testing.T) {
	var (
		rn, _ = NewRenderer(DefaultSchema())
		rt    = NewRunningTotals(&ledger.Account{ID: 1, Code: "1000", Name: "Cash"}, nil)
		w     eventWriter
	)

	if err := rn.WriteEndingBalance(&w, "ACME", PartnerScope, rt.Snapshot()); !errors.Is(err, ErrNotFinished) {
		t.Fatalf("WriteEndingBalance() before Finish returned %v, want ErrNotFinished", err)
	}
	if err := rt.Finish(); err != nil {
		t.Fatalf("rt.Finish() returned unexpected error: %v", err)
	}
	if err := rn.WriteEndingBalance(&w, "ACME", PartnerScope, rt.Snapshot()); err != nil {
		t.Fatalf("WriteEndingBalance() returned unexpected error: %v", err)
	}
	if len(w.events) != 1 {
		t.Fatalf("got %d events, want 1", len(w.events))
	}
	cells := w.events[0].Cells
	if cells[0].Text != "ACME" || cells[5].Text != PartnerEndingBalanceLabel {
		t.Errorf("unexpected partner ending balance row: %+v", cells)
	}
}

func TestRenderCSVGolden(t *testing.T) {
	var (
		rn, _ = NewRenderer(DefaultSchema())
		tw    = NewTableWriter(rn.Schema)
		buf   bytes.Buffer
		r     = table.CSVRenderer{Round: 2}
	)

	if err := rn.Render(context.Background(), scenarioData(), tw); err != nil {
		t.Fatalf("rn.Render() returned unexpected error: %v", err)
	}
	if err := r.Render(tw.Table, &buf); err != nil {
		t.Fatalf("r.Render() returned unexpected error: %v", err)
	}

	goldie.New(t).Assert(t, "scenario", buf.Bytes())
}
