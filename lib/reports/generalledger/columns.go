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
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/ledger"
)

// Kind is the value kind of a column.
type Kind int

const (
	// Text columns hold strings.
	Text Kind = iota
	// Amount columns hold decimals.
	Amount
)

// Source determines how a column obtains its value.
type Source int

const (
	// DirectField reads a field of the line.
	DirectField Source = iota
	// AccountCode reads the code of the account.
	AccountCode
	// Label composes the line name and invoice number.
	Label
	// AmountWithOverrides reads a line field or a cumulative figure and
	// has separate figures for the balance rows.
	AmountWithOverrides
)

// Field is a field of a ledger line.
type Field int

const (
	// NoField selects no field.
	NoField Field = iota
	// DateField is the line date.
	DateField
	// PeriodField is the accounting period code.
	PeriodField
	// EntryField is the name of the journal entry.
	EntryField
	// JournalField is the journal code.
	JournalField
	// PartnerField is the partner name.
	PartnerField
	// CounterpartsField lists the counterpart accounts.
	CounterpartsField
	// CurrencyField is the line currency.
	CurrencyField
	// DebitField is the debit amount.
	DebitField
	// CreditField is the credit amount.
	CreditField
	// BalanceField is the line balance.
	BalanceField
	// AmountCurrencyField is the amount in the line currency.
	AmountCurrencyField
)

func (f Field) kind() (Kind, bool) {
	switch f {
	case DateField, PeriodField, EntryField, JournalField, PartnerField, CounterpartsField, CurrencyField:
		return Text, true
	case DebitField, CreditField, BalanceField, AmountCurrencyField:
		return Amount, true
	}
	return Text, false
}

// Figure is one of the figures tracked by running totals.
type Figure int

const (
	// NoFigure selects no figure.
	NoFigure Figure = iota
	// DebitFigure is the debit total.
	DebitFigure
	// CreditFigure is the credit total.
	CreditFigure
	// BalanceFigure is the balance.
	BalanceFigure
	// BalanceCurrencyFigure is the balance in currency.
	BalanceCurrencyFigure
)

func (f Figure) valid() bool {
	return f >= DebitFigure && f <= BalanceCurrencyFigure
}

// Column describes one column of the report.
type Column struct {
	Header string
	Width  float64
	Kind   Kind
	Source Source

	// Field is the line field for DirectField and AmountWithOverrides.
	Field Field
	// Cumulative makes an AmountWithOverrides column read the running
	// figure instead of Field.
	Cumulative Figure
	// Initial and Final are read on the balance rows. NoFigure falls back
	// to the regular accessor.
	Initial, Final Figure
}

// Cell is a rendered cell.
type Cell struct {
	Kind   Kind
	Text   string
	Amount decimal.Decimal
	// Blank cells have no value.
	Blank bool
	// Span is the number of columns covered by this cell. Covered cells
	// are left blank.
	Span int
}

func textCell(s string) Cell {
	return Cell{Kind: Text, Text: s}
}

func amountCell(d decimal.Decimal) Cell {
	return Cell{Kind: Amount, Amount: d}
}

func blankCell(k Kind) Cell {
	return Cell{Kind: k, Blank: true}
}

// Value resolves the cell of a line row. The snapshot must be taken after
// the line was folded.
func (c Column) Value(l *ledger.Line, s Snapshot) Cell {
	switch c.Source {
	case AccountCode:
		if s.Account == nil {
			return blankCell(Text)
		}
		return textCell(s.Account.Code)
	case Label:
		if l == nil {
			return blankCell(Text)
		}
		return textCell(l.Label())
	case AmountWithOverrides:
		if c.Cumulative != NoFigure {
			return amountCell(s.Cumul.Figure(c.Cumulative))
		}
	}
	if l == nil {
		return blankCell(c.Kind)
	}
	return fieldValue(l, c.Field)
}

// InitialValue resolves the cell of the initial balance row.
func (c Column) InitialValue(s Snapshot) Cell {
	if c.Initial != NoFigure {
		return amountCell(s.Initial.Figure(c.Initial))
	}
	if c.Cumulative != NoFigure {
		return amountCell(s.Initial.Figure(c.Cumulative))
	}
	return c.Value(nil, s)
}

// FinalValue resolves the cell of the ending balance row.
func (c Column) FinalValue(s Snapshot) Cell {
	if c.Final != NoFigure {
		return amountCell(s.Final.Figure(c.Final))
	}
	if c.Cumulative != NoFigure {
		return amountCell(s.Final.Figure(c.Cumulative))
	}
	return c.Value(nil, s)
}

func fieldValue(l *ledger.Line, f Field) Cell {
	switch f {
	case DateField:
		return textCell(date.Format(l.Date))
	case PeriodField:
		return textCell(l.PeriodCode)
	case EntryField:
		return textCell(l.MoveName)
	case JournalField:
		return textCell(l.JournalCode)
	case PartnerField:
		return textCell(l.PartnerName)
	case CounterpartsField:
		return textCell(l.Counterparts)
	case CurrencyField:
		return textCell(l.Currency)
	case DebitField:
		return amountCell(l.Debit)
	case CreditField:
		return amountCell(l.Credit)
	case BalanceField:
		return amountCell(l.Balance)
	case AmountCurrencyField:
		return amountCell(l.AmountCurrency)
	}
	return blankCell(Text)
}

// Schema is the ordered list of columns with the layout of the balance
// rows.
type Schema struct {
	Columns []Column

	// InitialLabelPos is the column of the initial balance label.
	InitialLabelPos int
	// FinalNameSpan is the number of columns covered by the account name
	// on the ending balance row.
	FinalNameSpan int
	// FinalLabelPos is the column of the ending balance label.
	FinalLabelPos int
}

// colPartner is the position of the partner column, where the balance
// rows put their labels.
const colPartner = 5

var defaultColumns = []Column{
	{Header: "Date", Width: 11, Source: DirectField, Field: DateField},
	{Header: "Period", Width: 11, Source: DirectField, Field: PeriodField},
	{Header: "Entry", Width: 18, Source: DirectField, Field: EntryField},
	{Header: "Journal", Width: 8, Source: DirectField, Field: JournalField},
	{Header: "Account", Width: 9, Source: AccountCode},
	{Header: "Partner", Width: 25, Source: DirectField, Field: PartnerField},
	{Header: "Label", Width: 40, Source: Label},
	{Header: "Counterpart", Width: 25, Source: DirectField, Field: CounterpartsField},
	{
		Header: "Debit", Width: 14, Kind: Amount, Source: AmountWithOverrides,
		Field: DebitField, Initial: DebitFigure, Final: DebitFigure,
	},
	{
		Header: "Credit", Width: 14, Kind: Amount, Source: AmountWithOverrides,
		Field: CreditField, Initial: CreditFigure, Final: CreditFigure,
	},
	{
		Header: "Cumul. Bal.", Width: 14, Kind: Amount, Source: AmountWithOverrides,
		Cumulative: BalanceFigure, Initial: BalanceFigure, Final: BalanceFigure,
	},
}

var currencyColumns = []Column{
	{Header: "Cur.", Width: 7, Source: DirectField, Field: CurrencyField},
	{
		Header: "Cumul. Cur. Bal.", Width: 14, Kind: Amount, Source: AmountWithOverrides,
		Cumulative: BalanceCurrencyFigure, Initial: BalanceCurrencyFigure, Final: BalanceCurrencyFigure,
	},
}

// DefaultSchema returns the standard general ledger columns.
func DefaultSchema() Schema {
	return Schema{
		Columns:         append([]Column(nil), defaultColumns...),
		InitialLabelPos: colPartner,
		FinalNameSpan:   colPartner,
		FinalLabelPos:   colPartner,
	}
}

// CurrencySchema returns the standard columns followed by the currency
// and the cumulative balance in currency.
func CurrencySchema() Schema {
	s := DefaultSchema()
	s.Columns = append(s.Columns, currencyColumns...)
	return s
}

// balanceColumn returns the index of the column showing the final
// balance, or -1.
func (s Schema) balanceColumn() int {
	for i, c := range s.Columns {
		if c.Source == AmountWithOverrides && c.Final == BalanceFigure {
			return i
		}
	}
	return -1
}

// Headers returns the column headers.
func (s Schema) Headers() []string {
	res := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		res = append(res, c.Header)
	}
	return res
}

// Widths returns the column width hints.
func (s Schema) Widths() []float64 {
	res := make([]float64, 0, len(s.Columns))
	for _, c := range s.Columns {
		res = append(res, c.Width)
	}
	return res
}

// Validate checks that every column accessor resolves and that the
// balance row layout fits the columns.
func (s Schema) Validate() error {
	var err error
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema has no columns")
	}
	for i, c := range s.Columns {
		if cerr := c.validate(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("column %d (%s): %w", i, c.Header, cerr))
		}
	}
	n := len(s.Columns)
	if s.InitialLabelPos < 0 || s.InitialLabelPos >= n {
		err = multierr.Append(err, fmt.Errorf("initial balance label position %d out of range", s.InitialLabelPos))
	}
	if s.FinalLabelPos < 0 || s.FinalLabelPos >= n {
		err = multierr.Append(err, fmt.Errorf("ending balance label position %d out of range", s.FinalLabelPos))
	}
	if s.FinalNameSpan < 1 || s.FinalNameSpan > s.FinalLabelPos {
		err = multierr.Append(err, fmt.Errorf("ending balance name span %d must be between 1 and the label position %d", s.FinalNameSpan, s.FinalLabelPos))
	}
	return err
}

func (c Column) validate() error {
	switch c.Source {
	case DirectField:
		k, ok := c.Field.kind()
		if !ok {
			return fmt.Errorf("unknown field %d", c.Field)
		}
		if k != c.Kind {
			return fmt.Errorf("field %d does not match the column kind", c.Field)
		}
		if c.Cumulative != NoFigure || c.Initial != NoFigure || c.Final != NoFigure {
			return fmt.Errorf("direct field columns take no figures")
		}
	case AccountCode, Label:
		if c.Kind != Text {
			return fmt.Errorf("computed text column must have kind text")
		}
		if c.Field != NoField || c.Cumulative != NoFigure || c.Initial != NoFigure || c.Final != NoFigure {
			return fmt.Errorf("computed text columns take no field or figures")
		}
	case AmountWithOverrides:
		if c.Kind != Amount {
			return fmt.Errorf("amount column must have kind amount")
		}
		switch {
		case c.Cumulative != NoFigure && c.Field != NoField:
			return fmt.Errorf("amount column must have either a field or a cumulative figure")
		case c.Cumulative != NoFigure:
			if !c.Cumulative.valid() {
				return fmt.Errorf("unknown figure %d", c.Cumulative)
			}
		default:
			if k, ok := c.Field.kind(); !ok || k != Amount {
				return fmt.Errorf("unknown amount field %d", c.Field)
			}
		}
		for _, f := range []Figure{c.Initial, c.Final} {
			if f != NoFigure && !f.valid() {
				return fmt.Errorf("unknown figure %d", f)
			}
		}
	default:
		return fmt.Errorf("unknown source %d", c.Source)
	}
	return nil
}
