// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package telegram

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"lightshop/internal/models"
)

// DefaultProductName names products posted without a caption.
const DefaultProductName = "Новый товар"

// ParseCaption turns a post caption into a product draft. The first line
// is the name, cut to the product name limit. A later line mentioning "цена" or "price" sets the price
// from its digits; one mentioning "категория" or "category" selects the
// landscape category when it says so and interior otherwise. Every other
// line goes into the description.
func ParseCaption(text string) models.ProductDraft {
	d := models.ProductDraft{
		Name:      DefaultProductName,
		Category:  models.CategoryInterior,
		GlowColor: models.GlowBlue,
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if name := strings.TrimSpace(lines[0]); name != "" {
		d.Name = truncateRunes(name, models.MaxProductNameLen)
	}

	var description []string
	for _, line := range lines[1:] {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.Contains(lower, "цена") || strings.Contains(lower, "price"):
			if price, ok := digits(line); ok && price <= models.MaxPrice {
				d.Price = price
			}
		case strings.Contains(lower, "категория") || strings.Contains(lower, "category"):
			if strings.Contains(lower, "ландшафт") || strings.Contains(lower, "landscape") {
				d.Category = models.CategoryLandscape
			}
		default:
			description = append(description, line)
		}
	}
	d.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return d
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// digits concatenates every ASCII digit in s, so "Цена: 15 000 руб."
// yields 15000.
func digits(s string) (int64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
