package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"lightshop/internal/models"
)

func TestParseCaption(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.ProductDraft
	}{
		{
			name: "empty caption",
			text: "",
			want: models.ProductDraft{Name: DefaultProductName, Category: models.CategoryInterior, GlowColor: models.GlowBlue},
		},
		{
			name: "name only",
			text: "  Бра Лофт  ",
			want: models.ProductDraft{Name: "Бра Лофт", Category: models.CategoryInterior, GlowColor: models.GlowBlue},
		},
		{
			name: "full caption",
			text: "Фонарь\nЦена: 15 000 руб.\nКатегория: Ландшафт\nIP65\nАлюминий",
			want: models.ProductDraft{
				Name: "Фонарь", Category: models.CategoryLandscape, Price: 15000,
				GlowColor: models.GlowBlue, Description: "IP65\nАлюминий",
			},
		},
		{
			name: "english keywords",
			text: "Lamp\r\nprice 990\r\ncategory: landscape",
			want: models.ProductDraft{Name: "Lamp", Category: models.CategoryLandscape, Price: 990, GlowColor: models.GlowBlue},
		},
		{
			name: "other category stays interior",
			text: "Люстра\nКатегория: интерьер",
			want: models.ProductDraft{Name: "Люстра", Category: models.CategoryInterior, GlowColor: models.GlowBlue},
		},
		{
			name: "price line without digits",
			text: "Шар\nЦена: договорная",
			want: models.ProductDraft{Name: "Шар", Category: models.CategoryInterior, GlowColor: models.GlowBlue},
		},
		{
			name: "empty first line keeps default name",
			text: "\nцена 500",
			want: models.ProductDraft{Name: DefaultProductName, Category: models.CategoryInterior, Price: 500, GlowColor: models.GlowBlue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCaption(tt.text))
		})
	}
}

func TestParseCaptionLimits(t *testing.T) {
	long := strings.Repeat("Светильник ", 40)
	d := ParseCaption(long + "\nЦена: 5 000")
	assert.Equal(t, models.MaxProductNameLen, utf8.RuneCountInString(d.Name))
	assert.True(t, strings.HasPrefix(long, d.Name))
	assert.Equal(t, int64(5000), d.Price)

	d = ParseCaption("Люстра\nЦена: 9 999 999 999 999")
	assert.Equal(t, "Люстра", d.Name)
	assert.Zero(t, d.Price, "price above the catalog cap is ignored")
}

func TestDigits(t *testing.T) {
	n, ok := digits("Цена: 1 250 000 ₽")
	assert.True(t, ok)
	assert.Equal(t, int64(1250000), n)

	_, ok = digits("нет цены")
	assert.False(t, ok)

	_, ok = digits("99999999999999999999999")
	assert.False(t, ok, "overflow is ignored")
}
