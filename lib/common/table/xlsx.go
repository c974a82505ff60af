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

package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

const defaultSheet = "Sheet1"

// XLSXRenderer renders a table to an Excel workbook with a single sheet.
// Separator rows are skipped, spanning cells are merged.
type XLSXRenderer struct {
	Sheet string
	Round int32
}

type xlsxStyles struct {
	title, header, text, bold, amount, boldAmount int
}

// Render renders the table as a workbook to w.
func (r *XLSXRenderer) Render(t *Table, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	sheet := defaultSheet
	if r.Sheet != "" && r.Sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, r.Sheet); err != nil {
			return err
		}
		sheet = r.Sheet
	}
	styles, err := r.createStyles(f)
	if err != nil {
		return err
	}
	for i, width := range t.Widths() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	var rowNo int
	for _, row := range t.rows {
		if len(row.cells) > 0 && row.cells[0].isSep() {
			continue
		}
		rowNo++
		if isBlank(row) {
			continue
		}
		for i, c := range row.cells {
			if err := r.renderCell(f, sheet, styles, row.style, c, i+1, rowNo); err != nil {
				return fmt.Errorf("row %d, column %d: %w", rowNo, i+1, err)
			}
		}
	}
	return f.Write(w)
}

func (r *XLSXRenderer) renderCell(f *excelize.File, sheet string, s *xlsxStyles, rs Style, c cell, col, row int) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	textStyle, amountStyle := s.text, s.amount
	switch rs {
	case Title:
		textStyle, amountStyle = s.title, s.title
	case Header:
		textStyle, amountStyle = s.header, s.header
	case Bold:
		textStyle, amountStyle = s.bold, s.boldAmount
	}
	switch t := c.(type) {

	case coveredCell:
		return nil

	case emptyCell:
		return f.SetCellStyle(sheet, ref, ref, textStyle)

	case textCell:
		if err := f.SetCellStr(sheet, ref, t.Content); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, ref, ref, textStyle)

	case spanCell:
		end, err := excelize.CoordinatesToCellName(col+t.n-1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, ref, t.Content); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, ref, end); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, ref, end, textStyle)

	case numberCell:
		if err := f.SetCellFloat(sheet, ref, t.n.Round(r.Round).InexactFloat64(), -1, 64); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, ref, ref, amountStyle)
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func (r *XLSXRenderer) createStyles(f *excelize.File) (*xlsxStyles, error) {
	numFmt := "#,##0"
	if r.Round > 0 {
		numFmt += "." + strings.Repeat("0", int(r.Round))
	}
	var (
		bold   = &excelize.Font{Bold: true}
		border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		}
		res  xlsxStyles
		defs = []struct {
			id    *int
			style *excelize.Style
		}{
			{&res.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
			{&res.header, &excelize.Style{
				Font:      bold,
				Border:    border,
				Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			}},
			{&res.text, &excelize.Style{Border: border}},
			{&res.bold, &excelize.Style{Font: bold, Border: border}},
			{&res.amount, &excelize.Style{Border: border, CustomNumFmt: &numFmt}},
			{&res.boldAmount, &excelize.Style{Font: bold, Border: border, CustomNumFmt: &numFmt}},
		}
	)
	for _, def := range defs {
		id, err := f.NewStyle(def.style)
		if err != nil {
			return nil, err
		}
		*def.id = id
	}
	return &res, nil
}

func isBlank(row *Row) bool {
	for _, c := range row.cells {
		if _, ok := c.(emptyCell); !ok {
			return false
		}
	}
	return true
}
