// Copyright 2021 Silvio Böhler
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

package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table to text.
type TextRenderer struct {
	table     *Table
	Color     bool
	Thousands bool
	Round     int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders this table to a string.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	r.table = t
	defer func() { r.table = nil }()
	color.NoColor = !r.Color

	widths := r.columnWidths()
	for _, row := range r.table.rows {
		if len(row.cells) == 0 {
			continue
		}
		if row.cells[0].isSep() {
			if err := writeString(w, "+-"); err != nil {
				return err
			}
		} else {
			if err := writeString(w, "| "); err != nil {
				return err
			}
		}
		for i := 0; i < len(row.cells); {
			c, n := row.cells[i], span(row.cells[i])
			if err := r.renderCell(c, spanWidth(widths, i, n), w); err != nil {
				return err
			}
			i += n
			if i < len(row.cells) {
				if err := writeString(w, createSep(c, row.cells[i])); err != nil {
					return err
				}
			}
		}
		if row.cells[len(row.cells)-1].isSep() {
			if err := writeString(w, "-+\n"); err != nil {
				return err
			}
		} else {
			if err := writeString(w, " |\n"); err != nil {
				return err
			}
		}
	}
	return writeString(w, "\n")
}

func (r *TextRenderer) columnWidths() []int {
	widths := make([]int, r.table.Width())
	for _, row := range r.table.rows {
		for i, c := range row.cells {
			if widths[i] < r.minLengthCell(c) {
				widths[i] = r.minLengthCell(c)
			}
		}
	}
	groups := make(map[int]int)
	for i, w := range widths {
		if groups[r.table.columns[i]] < w {
			groups[r.table.columns[i]] = w
		}
	}
	for i, w := range widths {
		if w < groups[r.table.columns[i]] {
			widths[i] = groups[r.table.columns[i]]
		}
	}
	// widen the last covered column until every spanning cell fits
	for _, row := range r.table.rows {
		for i, c := range row.cells {
			s, ok := c.(spanCell)
			if !ok {
				continue
			}
			l := utf8.RuneCountInString(s.Content)
			if have := spanWidth(widths, i, s.n); have < l {
				widths[i+s.n-1] += l - have
			}
		}
	}
	return widths
}

func span(c cell) int {
	if s, ok := c.(spanCell); ok {
		return s.n
	}
	return 1
}

func spanWidth(widths []int, i, n int) int {
	var w int
	for j := i; j < i+n && j < len(widths); j++ {
		w += widths[j]
	}
	return w + 3*(n-1)
}

func (r *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell, coveredCell:
		return writeSpace(w, l)

	case SeparatorCell:
		return writeStrings(w, "-", l)

	case spanCell:
		return r.renderText(t.textCell, l, w)

	case textCell:
		return r.renderText(t, l, w)

	case numberCell:
		var (
			s      = r.numToString(t.n)
			before = l - utf8.RuneCountInString(s)
		)
		if err := writeSpace(w, before); err != nil {
			return err
		}
		var err error
		switch {
		case t.n.LessThan(decimal.Zero):
			_, err = red.Fprint(w, s)
		case t.n.Equal(decimal.Zero):
			_, err = fmt.Fprint(w, s)
		case t.n.GreaterThan(decimal.Zero):
			_, err = green.Fprint(w, s)
		}
		if err != nil {
			return err
		}
		return writeSpace(w, l-before-utf8.RuneCountInString(s))
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func (r *TextRenderer) renderText(t textCell, l int, w io.Writer) error {
	var before int
	switch t.Align {
	case Right:
		before = l - utf8.RuneCountInString(t.Content)
	case Center:
		before = (l - utf8.RuneCountInString(t.Content)) / 2
	}
	if err := writeSpace(w, before); err != nil {
		return err
	}
	if err := writeString(w, t.Content); err != nil {
		return err
	}
	return writeSpace(w, l-before-utf8.RuneCountInString(t.Content))
}

func writeStrings(w io.Writer, s string, l int) error {
	for i := 0; i < l; i++ {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeSpace(w io.Writer, l int) error {
	return writeStrings(w, " ", l)
}

func (r *TextRenderer) minLengthCell(c cell) int {
	switch t := c.(type) {
	case emptyCell, coveredCell, SeparatorCell, spanCell:
		return 0
	case textCell:
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(r.numToString(t.n))
	}
	return 0
}

func createSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

var k = decimal.RequireFromString("1000")

func (r *TextRenderer) numToString(d decimal.Decimal) string {
	if r.Thousands {
		d = d.Div(k)
	}
	return addThousandsSep(d.StringFixed(r.Round))
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	var (
		b  strings.Builder
		ok bool
	)
	for i, ch := range e {
		if i >= index && ch != '-' {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}
