// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"lightshop/internal/models"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Каталог"

// columns lists the export layout. Import matches headers against both
// the title and the key, case-insensitively, so either spelling works.
var columns = []struct {
	key   string
	title string
	width float64
}{
	{"id", "ID", 8},
	{"name", "Название", 40},
	{"category", "Категория", 16},
	{"price", "Цена", 12},
	{"image_url", "Изображение", 50},
	{"glow_color", "Свечение", 12},
	{"description", "Описание", 60},
	{"created_at", "Создан", 20},
}

// ImportRow is one parsed data row. Err is set when the row could not be
// turned into a draft; other rows are unaffected.
type ImportRow struct {
	Row   int                 `json:"row"`
	Draft models.ProductDraft `json:"-"`
	Err   error               `json:"-"`
}

// ErrNoHeader is returned when the first sheet has no recognisable header.
var ErrNoHeader = errors.New("spreadsheet has no name/price header row")

// WriteXLSX writes products as a single-sheet workbook.
func WriteXLSX(w io.Writer, products []*models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.title
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return fmt.Errorf("xlsx col width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	for i, p := range products {
		row := []any{
			p.ID,
			p.Name,
			string(p.Category),
			p.Price,
			p.ImageURL,
			string(p.GlowColor),
			p.Description,
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// ParseXLSX reads product drafts from the first sheet of a workbook. The
// first row must be a header naming at least the name and price columns.
// Empty rows are skipped. Row numbers are 1-based as shown in a
// spreadsheet program.
func ParseXLSX(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	index := mapColumns(rows[0])
	if _, ok := index["name"]; !ok {
		return nil, ErrNoHeader
	}
	if _, ok := index["price"]; !ok {
		return nil, ErrNoHeader
	}

	var out []ImportRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		get := func(key string) string {
			idx, ok := index[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		item := ImportRow{Row: i + 1}
		price, err := parsePrice(get("price"))
		if err != nil {
			item.Err = fmt.Errorf("некорректная цена %q", get("price"))
			out = append(out, item)
			continue
		}
		item.Draft = models.ProductDraft{
			Name:        get("name"),
			Category:    parseCategory(get("category")),
			Price:       price,
			ImageURL:    get("image_url"),
			GlowColor:   models.GlowColor(get("glow_color")),
			Description: get("description"),
		}
		item.Draft.Normalize()
		out = append(out, item)
	}
	return out, nil
}

func mapColumns(header []string) map[string]int {
	index := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, c := range columns {
			if h == c.key || h == strings.ToLower(c.title) {
				if _, seen := index[c.key]; !seen {
					index[c.key] = i
				}
			}
		}
	}
	return index
}

// parseCategory accepts either the category key or its storefront label.
func parseCategory(s string) models.Category {
	for _, c := range models.Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c
		}
	}
	return models.Category(s)
}

// parsePrice accepts "12500", "12 500" and whole-valued decimals such as
// "12500.00" or "12500,0". Spreadsheet programs produce all of these.
func parsePrice(s string) (int64, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, models.ErrInvalidPrice
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64/2 {
		return 0, models.ErrInvalidPrice
	}
	return int64(f), nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
