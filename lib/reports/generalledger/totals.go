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
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sboehler/gledger/lib/ledger"
)

// ErrFinished is returned when running totals are used after Finish.
var ErrFinished = errors.New("running totals are already finished")

// Amounts are the four figures tracked per account.
type Amounts struct {
	Debit, Credit   decimal.Decimal
	Balance         decimal.Decimal
	BalanceCurrency decimal.Decimal
}

// Add returns the sum of a and the figures of the given line.
func (a Amounts) Add(l *ledger.Line) Amounts {
	return Amounts{
		Debit:           a.Debit.Add(l.Debit),
		Credit:          a.Credit.Add(l.Credit),
		Balance:         a.Balance.Add(l.Balance),
		BalanceCurrency: a.BalanceCurrency.Add(l.AmountCurrency),
	}
}

// Figure returns the given figure.
func (a Amounts) Figure(f Figure) decimal.Decimal {
	switch f {
	case DebitFigure:
		return a.Debit
	case CreditFigure:
		return a.Credit
	case BalanceFigure:
		return a.Balance
	case BalanceCurrencyFigure:
		return a.BalanceCurrency
	}
	return decimal.Zero
}

// RunningTotals accumulates the figures of one account. Create one per
// account, Fold every line in order, then Finish exactly once.
type RunningTotals struct {
	Account               *ledger.Account
	DisplayInitialBalance bool

	initial, cumul, final Amounts
	finished              bool
}

// NewRunningTotals creates running totals seeded with the opening balance.
// A nil opening balance counts as zero.
func NewRunningTotals(a *ledger.Account, ob *ledger.OpeningBalance) *RunningTotals {
	var initial Amounts
	if ob != nil {
		initial = Amounts{
			Debit:           ob.Debit,
			Credit:          ob.Credit,
			Balance:         ob.Balance,
			BalanceCurrency: ob.BalanceCurrency,
		}
	}
	return &RunningTotals{
		Account:               a,
		DisplayInitialBalance: ob.DisplayInitialBalance(),
		initial:               initial,
		cumul:                 initial,
	}
}

// Fold adds the line to the cumulative figures.
func (rt *RunningTotals) Fold(l *ledger.Line) error {
	if rt.finished {
		return ErrFinished
	}
	rt.cumul = rt.cumul.Add(l)
	return nil
}

// Finish freezes the final figures.
func (rt *RunningTotals) Finish() error {
	if rt.finished {
		return ErrFinished
	}
	rt.final, rt.finished = rt.cumul, true
	return nil
}

// Snapshot returns the current state.
func (rt *RunningTotals) Snapshot() Snapshot {
	return Snapshot{
		Account:  rt.Account,
		Initial:  rt.initial,
		Cumul:    rt.cumul,
		Final:    rt.final,
		Finished: rt.finished,
	}
}

// Snapshot is the state of running totals at one point in time. Final is
// only meaningful if Finished is set.
type Snapshot struct {
	Account               *ledger.Account
	Initial, Cumul, Final Amounts
	Finished              bool
}
