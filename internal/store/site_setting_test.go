package store

import (
	"context"
	"testing"

	"lightshop/internal/models"
)

func TestSiteSettingStoreSaveReplacesRecord(t *testing.T) {
	db := testDB(t)
	s := NewSiteSettingStore(db)
	ctx := context.Background()
	t.Cleanup(func() { s.Reset(ctx) })

	// A row left by an older release must not survive a save.
	if _, err := db.ExecContext(ctx,
		`INSERT INTO site_settings (key, value, updated_at) VALUES ('legacyBanner', '"x"', NOW())
		 ON CONFLICT (key) DO NOTHING`); err != nil {
		t.Fatalf("insert stale row: %v", err)
	}

	want := models.DefaultSiteSettings()
	want.SiteName = "Свет и Тень"
	want.AccentColor = "12 80% 55%"
	want.BorderRadius = 4
	want.ShowPortfolio = false

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	rows, err := s.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if _, ok := rows["legacyBanner"]; ok {
		t.Error("stale key should have been removed")
	}
	if rows["siteName"] != `"Свет и Тень"` {
		t.Errorf("siteName row: got %q", rows["siteName"])
	}
}

func TestSiteSettingStoreReset(t *testing.T) {
	db := testDB(t)
	s := NewSiteSettingStore(db)
	ctx := context.Background()

	changed := models.DefaultSiteSettings()
	changed.Phone = "+7 (343) 000-00-00"
	if err := s.Save(ctx, changed); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	rows, err := s.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows after reset: got %d, want 0", len(rows))
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *models.DefaultSiteSettings() {
		t.Error("expected defaults after reset")
	}
}
