// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"unicode/utf8"

	"lightshop/internal/models"
	"lightshop/internal/themes"
)

// Validation limits for product, settings and order fields.
const (
	maxImageURLLen    = 2_000
	maxDescriptionLen = 5_000
	maxSettingTextLen = 10_000
	minFontSize       = 8
	maxFontSize       = 48
	maxBorderRadius   = 64
	maxContactLen     = 200
	maxMessageLen     = 2_000
	maxQuantity       = 100_000
)

// validateDraft checks a normalized product draft and returns the first
// error found.
func validateDraft(d *models.ProductDraft) string {
	if d.Name == "" {
		return "Name is required"
	}
	if utf8.RuneCountInString(d.Name) > models.MaxProductNameLen {
		return "Name is too long (max 200 characters)"
	}
	if !d.Category.Valid() {
		return "Unknown category"
	}
	if d.Price < 0 {
		return "Price must not be negative"
	}
	if d.Price > models.MaxPrice {
		return "Price is too large (max 1,000,000,000,000)"
	}
	if d.ImageURL == "" {
		return "Image URL is required"
	}
	if utf8.RuneCountInString(d.ImageURL) > maxImageURLLen {
		return "Image URL is too long (max 2,000 characters)"
	}
	if !d.GlowColor.Valid() {
		return "Unknown glow color"
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)"
	}
	return ""
}

// validateSettings checks the theme tokens and text lengths of a settings
// record.
func validateSettings(s *models.SiteSettings) string {
	colors := []struct{ field, value string }{
		{"primaryColor", s.PrimaryColor},
		{"secondaryColor", s.SecondaryColor},
		{"accentColor", s.AccentColor},
		{"backgroundColor", s.BackgroundColor},
		{"textColor", s.TextColor},
	}
	for _, c := range colors {
		if _, err := themes.ParseHSL(c.value); err != nil {
			return fmt.Sprintf("%s must be an HSL value like \"217 91%% 60%%\"", c.field)
		}
	}
	if !themes.ValidFont(s.HeadingFont) {
		return "headingFont is not a valid font family"
	}
	if !themes.ValidFont(s.BodyFont) {
		return "bodyFont is not a valid font family"
	}
	if s.FontSize < minFontSize || s.FontSize > maxFontSize {
		return "fontSize must be between 8 and 48"
	}
	if s.BorderRadius < 0 || s.BorderRadius > maxBorderRadius {
		return "borderRadius must be between 0 and 64"
	}

	for _, f := range settingTexts(s) {
		if utf8.RuneCountInString(f.value) > maxSettingTextLen {
			return f.field + " is too long (max 10,000 characters)"
		}
	}
	return ""
}

type settingText struct{ field, value string }

// settingTexts lists every free-text setting in form order.
func settingTexts(s *models.SiteSettings) []settingText {
	return []settingText{
		{"siteName", s.SiteName},
		{"siteSlogan", s.SiteSlogan},
		{"logo", s.Logo},
		{"phone", s.Phone},
		{"email", s.Email},
		{"address", s.Address},
		{"workHours", s.WorkHours},
		{"heroTitle", s.HeroTitle},
		{"heroSubtitle", s.HeroSubtitle},
		{"heroButton1Text", s.HeroButton1Text},
		{"heroButton2Text", s.HeroButton2Text},
		{"catalogTitle", s.CatalogTitle},
		{"catalogSubtitle", s.CatalogSubtitle},
		{"aboutTitle", s.AboutTitle},
		{"aboutText", s.AboutText},
		{"whyUsTitle", s.WhyUsTitle},
		{"portfolioTitle", s.PortfolioTitle},
		{"portfolioSubtitle", s.PortfolioSubtitle},
		{"faqTitle", s.FAQTitle},
		{"contactsTitle", s.ContactsTitle},
		{"footerText", s.FooterText},
		{"metaTitle", s.MetaTitle},
		{"metaDescription", s.MetaDescription},
		{"metaKeywords", s.MetaKeywords},
		{"ogImage", s.OGImage},
	}
}

// validateOrder checks a normalized order request. Messages are shown
// verbatim in the storefront form.
func validateOrder(o *models.OrderRequest) string {
	if o.ProductID <= 0 {
		return "Выберите товар"
	}
	if o.Quantity < 1 {
		return "Количество должно быть не меньше 1"
	}
	if o.Quantity > maxQuantity {
		return "Слишком большое количество"
	}
	if o.Name == "" {
		return "Укажите имя"
	}
	if o.Phone == "" {
		return "Укажите телефон"
	}
	if utf8.RuneCountInString(o.Name) > maxContactLen ||
		utf8.RuneCountInString(o.Phone) > maxContactLen ||
		utf8.RuneCountInString(o.Email) > maxContactLen {
		return "Слишком длинное значение поля"
	}
	if utf8.RuneCountInString(o.Message) > maxMessageLen {
		return "Сообщение слишком длинное"
	}
	return ""
}
