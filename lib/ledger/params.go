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

package ledger

import (
	"fmt"
	"time"

	"github.com/sboehler/gledger/lib/common/date"
)

// TargetMove selects which journal entries the provider included.
type TargetMove int

const (
	// Posted includes posted entries only.
	Posted TargetMove = iota
	// All includes draft entries as well.
	All
)

func (tm TargetMove) String() string {
	switch tm {
	case Posted:
		return "posted"
	case All:
		return "all"
	}
	return ""
}

// ParseTargetMove parses "posted" or "all". The empty string means posted.
func ParseTargetMove(s string) (TargetMove, error) {
	switch s {
	case "", "posted":
		return Posted, nil
	case "all":
		return All, nil
	}
	return Posted, fmt.Errorf("invalid target move %q, expected posted or all", s)
}

// Params are the report parameters. They are shown in the report header
// and do not influence the computation.
type Params struct {
	DateFrom, DateTo time.Time
	TargetMove       TargetMove
	Centralize       bool
}

// Period returns the reported period.
func (p Params) Period() date.Period {
	return date.Period{Start: p.DateFrom, End: p.DateTo}
}

// Filter is a label/value pair describing a report parameter.
type Filter struct {
	Name, Value string
}

// Filters describes the parameters for the report header.
func (p Params) Filters() []Filter {
	targetMove := "All posted entries"
	if p.TargetMove == All {
		targetMove = "All entries"
	}
	centralize := "No"
	if p.Centralize {
		centralize = "Yes"
	}
	return []Filter{
		{"Date range filter", fmt.Sprintf("From: %s To: %s", date.Format(p.DateFrom), date.Format(p.DateTo))},
		{"Target Moves", targetMove},
		{"Centralize filter", centralize},
	}
}
