// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SiteSettings is the singleton record edited in the admin panel. Colors
// are HSL triples ("217 91% 60%") so they can be dropped straight into CSS
// custom properties.
type SiteSettings struct {
	SiteName   string `json:"siteName"`
	SiteSlogan string `json:"siteSlogan"`
	Logo       string `json:"logo"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	WorkHours  string `json:"workHours"`

	HeroTitle       string `json:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle"`
	HeroButton1Text string `json:"heroButton1Text"`
	HeroButton2Text string `json:"heroButton2Text"`

	CatalogTitle    string `json:"catalogTitle"`
	CatalogSubtitle string `json:"catalogSubtitle"`

	AboutTitle string `json:"aboutTitle"`
	AboutText  string `json:"aboutText"`

	WhyUsTitle string `json:"whyUsTitle"`

	PortfolioTitle    string `json:"portfolioTitle"`
	PortfolioSubtitle string `json:"portfolioSubtitle"`

	FAQTitle      string `json:"faqTitle"`
	ContactsTitle string `json:"contactsTitle"`
	FooterText    string `json:"footerText"`

	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`

	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`
	FontSize    int    `json:"fontSize"`

	BorderRadius int `json:"borderRadius"`

	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	OGImage         string `json:"ogImage"`

	ShowHero      bool `json:"showHero"`
	ShowCatalog   bool `json:"showCatalog"`
	ShowAbout     bool `json:"showAbout"`
	ShowWhyUs     bool `json:"showWhyUs"`
	ShowPortfolio bool `json:"showPortfolio"`
	ShowFAQ       bool `json:"showFAQ"`
	ShowContacts  bool `json:"showContacts"`
}

// DefaultSiteSettings returns the compiled-in settings used before anything
// has been saved and after a reset.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteName:   "Магазин Светильников . РФ",
		SiteSlogan: "ВАША АРХИТЕКТУРА СВЕТА",
		Phone:      "+7 (912) 345-67-89",
		Email:      "info@svetilniki.rf",
		Address:    "г. Екатеринбург, Сухой порт",
		WorkHours:  "Пн-Пт: 9:00-18:00",

		HeroTitle:       "СВЕТИЛЬНИКИ: ОТ СТАНДАРТНЫХ МОДЕЛЕЙ ДО ЭКСКЛЮЗИВНЫХ СВЕТОВЫХ ФОРМ.",
		HeroSubtitle:    "Добро пожаловать в Магазин Светильников.РФ. Здесь вы найдете светильники для интерьерных, экстерьерных и ландшафтных проектов.",
		HeroButton1Text: "Смотреть каталог",
		HeroButton2Text: "Связаться",

		CatalogTitle:    "Каталог световых фигур",
		CatalogSubtitle: "Выберите идеальное решение для вашего пространства",

		AboutTitle: "О нашей компании",
		AboutText:  "Мы специализируемся на поставке...",

		WhyUsTitle: "Почему выбирают нас",

		PortfolioTitle:    "Наши проекты",
		PortfolioSubtitle: "Реализованные световые решения",

		FAQTitle:      "Частые вопросы",
		ContactsTitle: "Связаться с нами",
		FooterText:    "© 2024 Магазин Светильников. Все права защищены.",

		PrimaryColor:    "217 91% 60%",
		SecondaryColor:  "262 83% 58%",
		AccentColor:     "38 92% 50%",
		BackgroundColor: "222 47% 5%",
		TextColor:       "210 40% 98%",

		HeadingFont: "Montserrat",
		BodyFont:    "Inter",
		FontSize:    16,

		BorderRadius: 12,

		MetaTitle:       "Магазин Светильников - Световые решения",
		MetaDescription: "Светильники для интерьера и ландшафта. Доставка по России.",
		MetaKeywords:    "светильники, освещение, ландшафтное освещение",

		ShowHero:      true,
		ShowCatalog:   true,
		ShowAbout:     true,
		ShowWhyUs:     true,
		ShowPortfolio: true,
		ShowFAQ:       true,
		ShowContacts:  true,
	}
}

// ToKV flattens the settings into key/value rows. Keys are the JSON field
// names and values are JSON-encoded, so every field type survives storage.
func (s *SiteSettings) ToKV() (map[string]string, error) {
	fields, err := s.fields()
	if err != nil {
		return nil, err
	}
	kv := make(map[string]string, len(fields))
	for k, v := range fields {
		kv[k] = string(v)
	}
	return kv, nil
}

// SiteSettingsFromKV rebuilds settings from stored rows. Missing keys keep
// their default value and unknown keys are ignored. Text fields also accept
// bare unquoted values, which is how older rows were written.
func SiteSettingsFromKV(kv map[string]string) (*SiteSettings, error) {
	s := DefaultSiteSettings()
	fields, err := s.fields()
	if err != nil {
		return nil, err
	}

	for k, v := range kv {
		def, known := fields[k]
		if !known {
			continue
		}
		raw := json.RawMessage(v)
		valid := json.Valid(raw)
		if len(def) > 0 && def[0] == '"' && (!valid || !strings.HasPrefix(v, `"`)) {
			if raw, err = json.Marshal(v); err != nil {
				return nil, fmt.Errorf("encode setting %s: %w", k, err)
			}
		} else if !valid {
			continue
		}

		one, err := json.Marshal(map[string]json.RawMessage{k: raw})
		if err != nil {
			return nil, fmt.Errorf("encode setting %s: %w", k, err)
		}
		// A value of the wrong type leaves the default in place.
		_ = json.Unmarshal(one, s)
	}
	return s, nil
}

// fields returns the settings keyed by JSON field name.
func (s *SiteSettings) fields() (map[string]json.RawMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("split settings: %w", err)
	}
	return fields, nil
}
