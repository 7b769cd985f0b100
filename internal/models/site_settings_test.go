package models

import (
	"encoding/json"
	"testing"
)

func TestSiteSettingsKVRoundTrip(t *testing.T) {
	s := DefaultSiteSettings()
	s.SiteName = "Свет & Тень \"Plus\""
	s.PrimaryColor = "10 20% 30%"
	s.FontSize = 18
	s.BorderRadius = 0
	s.ShowFAQ = false
	s.Logo = "https://cdn.example.com/logo.png"

	kv, err := s.ToKV()
	if err != nil {
		t.Fatalf("ToKV: %v", err)
	}

	got, err := SiteSettingsFromKV(kv)
	if err != nil {
		t.Fatalf("SiteSettingsFromKV: %v", err)
	}
	if *got != *s {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestSiteSettingsFromKVDefaults(t *testing.T) {
	got, err := SiteSettingsFromKV(nil)
	if err != nil {
		t.Fatalf("SiteSettingsFromKV: %v", err)
	}
	if *got != *DefaultSiteSettings() {
		t.Error("empty storage should yield the defaults")
	}
}

func TestSiteSettingsFromKVLegacyAndUnknown(t *testing.T) {
	kv := map[string]string{
		"siteName":     "Raw text value",
		"fontSize":     "20",
		"showHero":     "false",
		"unknownField": `"ignored"`,
	}
	got, err := SiteSettingsFromKV(kv)
	if err != nil {
		t.Fatalf("SiteSettingsFromKV: %v", err)
	}
	if got.SiteName != "Raw text value" {
		t.Errorf("siteName: got %q, want %q", got.SiteName, "Raw text value")
	}
	if got.FontSize != 20 {
		t.Errorf("fontSize: got %d, want 20", got.FontSize)
	}
	if got.ShowHero {
		t.Error("showHero: got true, want false")
	}
	if got.Phone != DefaultSiteSettings().Phone {
		t.Errorf("phone should keep its default, got %q", got.Phone)
	}
}

func TestSiteSettingsJSONNames(t *testing.T) {
	data, err := json.Marshal(DefaultSiteSettings())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"siteName", "primaryColor", "borderRadius", "showFAQ", "faqTitle", "ogImage"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
}

func TestSiteSettingsFromKVWrongType(t *testing.T) {
	got, err := SiteSettingsFromKV(map[string]string{
		"fontSize":  `"large"`,
		"siteName":  "123",
		"showAbout": "{broken",
	})
	if err != nil {
		t.Fatalf("SiteSettingsFromKV: %v", err)
	}
	def := DefaultSiteSettings()
	if got.FontSize != def.FontSize {
		t.Errorf("fontSize: got %d, want default %d", got.FontSize, def.FontSize)
	}
	if got.SiteName != "123" {
		t.Errorf("siteName: got %q, want %q", got.SiteName, "123")
	}
	if got.ShowAbout != def.ShowAbout {
		t.Errorf("showAbout: got %v, want default", got.ShowAbout)
	}
}
