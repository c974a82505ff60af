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
	"github.com/sboehler/gledger/lib/common/table"
	"github.com/sboehler/gledger/lib/ledger"
)

// RowKind is the kind of a data-bearing row.
type RowKind int

const (
	// InitialBalanceRow carries the opening balance of an account.
	InitialBalanceRow RowKind = iota
	// LineRow carries one transaction line.
	LineRow
	// EndingBalanceRow carries the final balance of an account.
	EndingBalanceRow
)

func (k RowKind) String() string {
	switch k {
	case InitialBalanceRow:
		return "initial"
	case LineRow:
		return "line"
	case EndingBalanceRow:
		return "ending"
	}
	return ""
}

// Writer receives the rows of a general ledger report.
type Writer interface {
	WriteTitle(title string)
	WriteFilters(filters []ledger.Filter)
	WriteHeader(cols []Column)
	WriteRow(kind RowKind, cells []Cell)
	WriteSpacer(n int)
}

// TableWriter writes a report into a table.
type TableWriter struct {
	Table *table.Table
}

var _ Writer = (*TableWriter)(nil)

// NewTableWriter creates a table for the given schema.
func NewTableWriter(s Schema) *TableWriter {
	groups := make([]int, len(s.Columns))
	for i := range groups {
		groups[i] = 1
	}
	tbl := table.New(groups...)
	tbl.SetWidths(s.Widths()...)
	return &TableWriter{Table: tbl}
}

// WriteTitle implements Writer.
func (tw *TableWriter) WriteTitle(title string) {
	tw.Table.AddStyledRow(table.Title).AddSpan(title, table.Left, tw.Table.Width())
}

// WriteFilters implements Writer. Names and values take two columns
// each if the table is wide enough.
func (tw *TableWriter) WriteFilters(filters []ledger.Filter) {
	var (
		nameSpan  = min(2, tw.Table.Width()-1)
		valueSpan = min(2, tw.Table.Width()-nameSpan)
	)
	if nameSpan < 1 {
		return
	}
	for _, f := range filters {
		row := tw.Table.AddRow().AddSpan(f.Name, table.Left, nameSpan).AddSpan(f.Value, table.Left, valueSpan)
		row.FillEmpty()
	}
}

// WriteHeader implements Writer.
func (tw *TableWriter) WriteHeader(cols []Column) {
	tw.Table.AddSeparatorRow()
	row := tw.Table.AddStyledRow(table.Header)
	for _, c := range cols {
		row.AddText(c.Header, table.Center)
	}
	tw.Table.AddSeparatorRow()
}

// WriteRow implements Writer.
func (tw *TableWriter) WriteRow(kind RowKind, cells []Cell) {
	style := table.Plain
	if kind != LineRow {
		style = table.Bold
	}
	if kind == EndingBalanceRow {
		tw.Table.AddSeparatorRow()
	}
	row := tw.Table.AddStyledRow(style)
	for i := 0; i < len(cells); {
		c := cells[i]
		switch {
		case c.Span > 1:
			row.AddSpan(c.Text, table.Left, c.Span)
			i += c.Span
			continue
		case c.Blank:
			row.AddEmpty()
		case c.Kind == Amount:
			row.AddNumber(c.Amount)
		default:
			row.AddText(c.Text, table.Left)
		}
		i++
	}
	row.FillEmpty()
}

// WriteSpacer implements Writer.
func (tw *TableWriter) WriteSpacer(n int) {
	for i := 0; i < n; i++ {
		tw.Table.AddEmptyRow()
	}
}

// Recorder is a Writer which stores the rows for later replay.
type Recorder struct {
	ops []func(Writer)
}

var _ Writer = (*Recorder)(nil)

// WriteTitle implements Writer.
func (r *Recorder) WriteTitle(title string) {
	r.ops = append(r.ops, func(w Writer) { w.WriteTitle(title) })
}

// WriteFilters implements Writer.
func (r *Recorder) WriteFilters(filters []ledger.Filter) {
	r.ops = append(r.ops, func(w Writer) { w.WriteFilters(filters) })
}

// WriteHeader implements Writer.
func (r *Recorder) WriteHeader(cols []Column) {
	r.ops = append(r.ops, func(w Writer) { w.WriteHeader(cols) })
}

// WriteRow implements Writer.
func (r *Recorder) WriteRow(kind RowKind, cells []Cell) {
	r.ops = append(r.ops, func(w Writer) { w.WriteRow(kind, cells) })
}

// WriteSpacer implements Writer.
func (r *Recorder) WriteSpacer(n int) {
	r.ops = append(r.ops, func(w Writer) { w.WriteSpacer(n) })
}

// Replay writes the recorded rows to w.
func (r *Recorder) Replay(w Writer) {
	for _, op := range r.ops {
		op(w)
	}
}
