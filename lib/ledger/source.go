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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/gledger/lib/common/date"
)

// Encoding is the character set of a data file.
type Encoding int

const (
	// UTF8 is the default encoding.
	UTF8 Encoding = iota
	// Latin1 is ISO 8859-1.
	Latin1
	// Windows1252 is the Windows western european code page.
	Windows1252
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case Latin1:
		return "latin1"
	case Windows1252:
		return "windows-1252"
	}
	return ""
}

// ParseEncoding parses the name of an encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "iso-8859-1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	}
	return UTF8, fmt.Errorf("unsupported encoding %q", s)
}

// Decode wraps r with a decoder to UTF-8.
func (e Encoding) Decode(r io.Reader) io.Reader {
	switch e {
	case Latin1:
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	case Windows1252:
		return charmap.Windows1252.NewDecoder().Reader(r)
	}
	return r
}

// FromPath loads and validates the data file at the given path.
func FromPath(p string, enc Encoding) (data *Data, err error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if data, err = Load(enc.Decode(bufio.NewReader(f))); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return data, nil
}

// Load decodes and validates a YAML data document.
func Load(r io.Reader) (*Data, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	data, err := doc.build()
	if err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

type document struct {
	Params          params                 `yaml:"params"`
	Accounts        []account              `yaml:"accounts"`
	OpeningBalances map[int]openingBalance `yaml:"opening_balances"`
	LedgerLines     map[int][]line         `yaml:"ledger_lines"`
}

type params struct {
	DateFrom   string `yaml:"date_from"`
	DateTo     string `yaml:"date_to"`
	TargetMove string `yaml:"target_move"`
	Centralize bool   `yaml:"centralize"`
}

type account struct {
	ID   int    `yaml:"id"`
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type openingBalance struct {
	Debit               amount `yaml:"debit"`
	Credit              amount `yaml:"credit"`
	Balance             amount `yaml:"balance"`
	InitBalance         amount `yaml:"init_balance"`
	BalanceCurrency     amount `yaml:"balance_currency"`
	InitBalanceCurrency amount `yaml:"init_balance_currency"`
}

type line struct {
	Date           string `yaml:"date"`
	PeriodCode     string `yaml:"period_code"`
	MoveName       string `yaml:"move_name"`
	JournalCode    string `yaml:"journal_code"`
	PartnerName    string `yaml:"partner_name"`
	Name           string `yaml:"lname"`
	InvoiceNumber  string `yaml:"invoice_number"`
	Counterparts   string `yaml:"counterparts"`
	Currency       string `yaml:"currency_name"`
	Debit          amount `yaml:"debit"`
	Credit         amount `yaml:"credit"`
	Balance        amount `yaml:"balance"`
	AmountCurrency amount `yaml:"amount_currency"`
}

// amount is a decimal which decodes from a YAML number or string.
type amount struct {
	d   decimal.Decimal
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	a.d, a.set = d, true
	return nil
}

func (a amount) or(b amount) decimal.Decimal {
	if a.set {
		return a.d
	}
	return b.d
}

func (doc *document) build() (*Data, error) {
	res := &Data{
		OpeningBalances: make(map[int]*OpeningBalance),
		Lines:           make(map[int][]*Line),
	}
	var err error
	if res.Params, err = doc.Params.build(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	for _, a := range doc.Accounts {
		res.Accounts = append(res.Accounts, &Account{ID: a.ID, Code: a.Code, Name: a.Name})
	}
	for id, ob := range doc.OpeningBalances {
		res.OpeningBalances[id] = &OpeningBalance{
			Debit:           ob.Debit.d,
			Credit:          ob.Credit.d,
			Balance:         ob.Balance.or(ob.InitBalance),
			BalanceCurrency: ob.BalanceCurrency.or(ob.InitBalanceCurrency),
		}
	}
	for id, ls := range doc.LedgerLines {
		lines := make([]*Line, 0, len(ls))
		for i, l := range ls {
			line, err := l.build()
			if err != nil {
				return nil, fmt.Errorf("account id %d, line #%d: %w", id, i, err)
			}
			lines = append(lines, line)
		}
		res.Lines[id] = lines
	}
	period := res.Period()
	if res.Params.DateFrom.IsZero() && !period.Start.IsZero() {
		res.Params.DateFrom = date.StartOf(period.Start, date.Monthly)
	}
	if res.Params.DateTo.IsZero() && !period.End.IsZero() {
		res.Params.DateTo = date.EndOf(period.End, date.Monthly)
	}
	return res, nil
}

func (p params) build() (Params, error) {
	var (
		res Params
		err error
	)
	if res.DateFrom, err = date.Parse(p.DateFrom); err != nil {
		return res, err
	}
	if res.DateTo, err = date.Parse(p.DateTo); err != nil {
		return res, err
	}
	if res.TargetMove, err = ParseTargetMove(p.TargetMove); err != nil {
		return res, err
	}
	res.Centralize = p.Centralize
	return res, nil
}

func (l line) build() (*Line, error) {
	d, err := date.Parse(l.Date)
	if err != nil {
		return nil, err
	}
	periodCode := l.PeriodCode
	if periodCode == "" {
		periodCode = date.PeriodCode(d)
	}
	return &Line{
		Date:           d,
		PeriodCode:     periodCode,
		MoveName:       l.MoveName,
		JournalCode:    l.JournalCode,
		PartnerName:    l.PartnerName,
		Name:           l.Name,
		InvoiceNumber:  l.InvoiceNumber,
		Counterparts:   l.Counterparts,
		Currency:       l.Currency,
		Debit:          l.Debit.d,
		Credit:         l.Credit.d,
		Balance:        l.Balance.d,
		AmountCurrency: l.AmountCurrency.d,
	}, nil
}
