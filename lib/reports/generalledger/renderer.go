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

// Package generalledger renders the general ledger: one table section per
// account with running totals.
package generalledger

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sboehler/gledger/lib/ledger"
)

// Labels of the report.
const (
	ReportName                = "General Ledger"
	InitialBalanceLabel       = "Initial balance"
	EndingBalanceLabel        = "Ending balance"
	PartnerEndingBalanceLabel = "Partner ending balance"
)

// Scope is the kind of object an ending balance refers to.
type Scope int

const (
	// AccountScope is the ending balance of an account.
	AccountScope Scope = iota
	// PartnerScope is the ending balance of a partner within an account.
	PartnerScope
)

// EndingBalanceLabel returns the label of the ending balance row.
func (s Scope) EndingBalanceLabel() string {
	if s == PartnerScope {
		return PartnerEndingBalanceLabel
	}
	return EndingBalanceLabel
}

// ErrNotFinished is returned when an ending balance is written from
// running totals which have not been finished.
var ErrNotFinished = errors.New("running totals are not finished")

// spacing is the number of blank rows after each account.
const spacing = 2

// Renderer renders a general ledger.
type Renderer struct {
	Schema Schema

	// Jobs is the number of accounts rendered concurrently. The output
	// does not depend on it.
	Jobs int

	// OnAccount is called after an account has been rendered. It may be
	// called concurrently if Jobs > 1.
	OnAccount func(*ledger.Account, Snapshot)
}

// NewRenderer creates a renderer for a validated schema.
func NewRenderer(s Schema) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid column schema: %w", err)
	}
	return &Renderer{Schema: s}, nil
}

// Render writes the report for the given data. Nothing written to w is
// usable if an error is returned.
func (rn *Renderer) Render(ctx context.Context, data *ledger.Data, w Writer) error {
	if err := data.Validate(); err != nil {
		return err
	}
	w.WriteTitle(ReportName)
	w.WriteFilters(data.Params.Filters())
	w.WriteSpacer(1)
	if rn.Jobs > 1 {
		return rn.renderParallel(ctx, data, w)
	}
	for _, a := range data.Accounts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rn.RenderAccount(a, data.Opening(a.ID), data.LinesOf(a.ID), w); err != nil {
			return err
		}
	}
	return nil
}

func (rn *Renderer) renderParallel(ctx context.Context, data *ledger.Data, w Writer) error {
	var (
		recs    = make([]Recorder, len(data.Accounts))
		g, gctx = errgroup.WithContext(ctx)
	)
	g.SetLimit(rn.Jobs)
	for i, a := range data.Accounts {
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return rn.RenderAccount(a, data.Opening(a.ID), data.LinesOf(a.ID), &recs[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range recs {
		recs[i].Replay(w)
	}
	return nil
}

// RenderAccount writes the section of one account.
func (rn *Renderer) RenderAccount(a *ledger.Account, ob *ledger.OpeningBalance, lines []*ledger.Line, w Writer) error {
	rt := NewRunningTotals(a, ob)
	w.WriteTitle(a.Title())
	w.WriteHeader(rn.Schema.Columns)
	if rt.DisplayInitialBalance {
		w.WriteRow(InitialBalanceRow, rn.initialBalanceCells(rt.Snapshot()))
	}
	for i, l := range lines {
		if err := rt.Fold(l); err != nil {
			return fmt.Errorf("%s, line #%d: %w", a.Title(), i, err)
		}
		w.WriteRow(LineRow, rn.lineCells(l, rt.Snapshot()))
	}
	if err := rt.Finish(); err != nil {
		return fmt.Errorf("%s: %w", a.Title(), err)
	}
	s := rt.Snapshot()
	if err := rn.WriteEndingBalance(w, a.Title(), AccountScope, s); err != nil {
		return err
	}
	w.WriteSpacer(spacing)
	if rn.OnAccount != nil {
		rn.OnAccount(a, s)
	}
	return nil
}

// WriteEndingBalance writes an ending balance row with the given name for
// finished running totals.
func (rn *Renderer) WriteEndingBalance(w Writer, name string, scope Scope, s Snapshot) error {
	if !s.Finished {
		return fmt.Errorf("%s: %w", name, ErrNotFinished)
	}
	cells := make([]Cell, len(rn.Schema.Columns))
	for i, c := range rn.Schema.Columns {
		cells[i] = c.FinalValue(s)
	}
	for i := 1; i < rn.Schema.FinalNameSpan; i++ {
		cells[i] = blankCell(Text)
	}
	cells[0] = Cell{Kind: Text, Text: name, Span: rn.Schema.FinalNameSpan}
	cells[rn.Schema.FinalLabelPos] = textCell(scope.EndingBalanceLabel())
	w.WriteRow(EndingBalanceRow, cells)
	return nil
}

func (rn *Renderer) initialBalanceCells(s Snapshot) []Cell {
	cells := make([]Cell, len(rn.Schema.Columns))
	for i, c := range rn.Schema.Columns {
		cells[i] = c.InitialValue(s)
	}
	cells[rn.Schema.InitialLabelPos] = textCell(InitialBalanceLabel)
	return cells
}

func (rn *Renderer) lineCells(l *ledger.Line, s Snapshot) []Cell {
	cells := make([]Cell, len(rn.Schema.Columns))
	for i, c := range rn.Schema.Columns {
		cells[i] = c.Value(l, s)
	}
	return cells
}
