// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package themes turns saved site settings into the CSS custom properties
// the storefront styles are built on.
package themes

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"lightshop/internal/models"
)

// ErrInvalidHSL is returned for colour tokens that are not "H S% L%".
var ErrInvalidHSL = errors.New("color must look like \"217 91% 60%\"")

// HSL is a parsed colour token.
type HSL struct {
	H, S, L float64
}

// String formats the colour the way it is stored and emitted.
func (c HSL) String() string {
	return fmt.Sprintf("%s %s%% %s%%", trim(c.H), trim(c.S), trim(c.L))
}

// ParseHSL parses a token of the form "217 91% 60%". Hue is 0-360,
// saturation and lightness 0-100. Commas between the parts are tolerated.
func ParseHSL(s string) (HSL, error) {
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(parts) != 3 {
		return HSL{}, ErrInvalidHSL
	}

	h, ok := number(strings.TrimSuffix(parts[0], "deg"), 360)
	if !ok {
		return HSL{}, ErrInvalidHSL
	}
	sat, ok := percent(parts[1])
	if !ok {
		return HSL{}, ErrInvalidHSL
	}
	light, ok := percent(parts[2])
	if !ok {
		return HSL{}, ErrInvalidHSL
	}
	return HSL{H: h, S: sat, L: light}, nil
}

func percent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	return number(strings.TrimSuffix(s, "%"), 100)
}

// number parses a plain decimal in [0, limit]. NaN, infinities, exponents
// and hex floats are refused so the value is always valid CSS.
func number(s string, limit float64) (float64, bool) {
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > limit {
		return 0, false
	}
	return v, true
}

func trim(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Variables returns the custom properties in emission order.
func Variables(s *models.SiteSettings) [][2]string {
	return [][2]string{
		{"--primary", color(s.PrimaryColor)},
		{"--secondary", color(s.SecondaryColor)},
		{"--accent", color(s.AccentColor)},
		{"--background", color(s.BackgroundColor)},
		{"--foreground", color(s.TextColor)},
		{"--radius", fmt.Sprintf("%dpx", s.BorderRadius)},
		{"--font-heading", font(s.HeadingFont)},
		{"--font-body", font(s.BodyFont)},
		{"--font-size", fmt.Sprintf("%dpx", s.FontSize)},
	}
}

// GenerateCSS renders the :root block for the given settings.
func GenerateCSS(s *models.SiteSettings) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range Variables(s) {
		b.WriteString(v[0])
		b.WriteByte(':')
		b.WriteString(v[1])
		b.WriteByte(';')
	}
	b.WriteString("}\n")
	return b.String()
}

// color normalises a stored token. Settings are validated on save, so an
// unparsable value only comes from hand-edited rows and falls back to the
// neutral foreground.
func color(token string) string {
	c, err := ParseHSL(token)
	if err != nil {
		return "0 0% 50%"
	}
	return c.String()
}

// font quotes a family name and drops anything that could escape the
// declaration.
func font(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "sans-serif"
	}
	return `"` + cleaned + `", sans-serif`
}

// ValidFont reports whether a font family name survives emission unchanged.
func ValidFont(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= 100 && font(name) == `"`+name+`", sans-serif`
}
