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

// Package ledger holds the pre-aggregated data of a general ledger report:
// accounts, their opening balances and the ordered transaction lines.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/sboehler/gledger/lib/common/date"
)

// Account is an account of the chart of accounts.
type Account struct {
	ID   int
	Code string
	Name string
}

// Title returns the display name of the account.
func (a Account) Title() string {
	return a.Code + " - " + a.Name
}

func (a Account) String() string {
	return a.Title()
}

// OpeningBalance is the balance of an account carried in from before the
// report period.
type OpeningBalance struct {
	Debit, Credit   decimal.Decimal
	Balance         decimal.Decimal
	BalanceCurrency decimal.Decimal
}

// DisplayInitialBalance returns whether the opening balance deserves its
// own row in the report.
func (ob *OpeningBalance) DisplayInitialBalance() bool {
	if ob == nil {
		return false
	}
	return !ob.Debit.IsZero() || !ob.Credit.IsZero()
}

// Line is a transaction line of an account.
type Line struct {
	Date          time.Time
	PeriodCode    string
	MoveName      string
	JournalCode   string
	PartnerName   string
	Name          string
	InvoiceNumber string
	Counterparts  string
	Currency      string

	Debit, Credit  decimal.Decimal
	Balance        decimal.Decimal
	AmountCurrency decimal.Decimal
}

// Label returns the line name followed by the invoice number in
// parentheses, if there is one.
func (l *Line) Label() string {
	switch {
	case l.InvoiceNumber == "":
		return l.Name
	case l.Name == "":
		return fmt.Sprintf("(%s)", l.InvoiceNumber)
	default:
		return fmt.Sprintf("%s (%s)", l.Name, l.InvoiceNumber)
	}
}

// Data is the input of a general ledger report.
type Data struct {
	Params          Params
	Accounts        []*Account
	OpeningBalances map[int]*OpeningBalance
	Lines           map[int][]*Line
}

// Opening returns the opening balance of the given account, or nil.
func (d *Data) Opening(id int) *OpeningBalance {
	return d.OpeningBalances[id]
}

// LinesOf returns the ordered lines of the given account.
func (d *Data) LinesOf(id int) []*Line {
	return d.Lines[id]
}

// Period returns the smallest period containing all line dates.
func (d *Data) Period() date.Period {
	var p date.Period
	for _, ls := range d.Lines {
		for _, l := range ls {
			if l != nil {
				p = p.Extend(l.Date)
			}
		}
	}
	return p
}

// Validate checks the data contract between the provider and the report.
func (d *Data) Validate() error {
	var (
		err   error
		known = make(map[int]bool)
	)
	for i, a := range d.Accounts {
		if a == nil {
			err = multierr.Append(err, fmt.Errorf("account #%d is nil", i))
			continue
		}
		if known[a.ID] {
			err = multierr.Append(err, fmt.Errorf("duplicate account id %d (%s)", a.ID, a.Title()))
		}
		known[a.ID] = true
	}
	ids := maps.Keys(d.OpeningBalances)
	slices.Sort(ids)
	for _, id := range ids {
		if !known[id] {
			err = multierr.Append(err, fmt.Errorf("opening balance for unknown account id %d", id))
		}
		if d.OpeningBalances[id] == nil {
			err = multierr.Append(err, fmt.Errorf("opening balance for account id %d is nil", id))
		}
	}
	ids = maps.Keys(d.Lines)
	slices.Sort(ids)
	for _, id := range ids {
		if !known[id] {
			err = multierr.Append(err, fmt.Errorf("ledger lines for unknown account id %d", id))
		}
		for i, l := range d.Lines[id] {
			if l == nil {
				err = multierr.Append(err, fmt.Errorf("ledger line #%d of account id %d is nil", i, id))
			}
		}
	}
	return err
}
