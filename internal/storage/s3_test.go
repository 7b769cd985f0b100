package storage

import "testing"

func TestNewWithoutCredentials(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		access   string
		secret   string
	}{
		{"no endpoint", "", "key", "secret"},
		{"no access key", "https://s3.example.com", "", "secret"},
		{"no secret key", "https://s3.example.com", "key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "ru-1", tt.access, tt.secret, "media", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != nil {
				t.Error("expected nil client when storage is not configured")
			}
		})
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://s3.example.com", "ru-1", "key", "secret", "", ""); err == nil {
		t.Error("expected error for empty bucket")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "ru-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := c.FileURL("media/home/a.jpg"), "https://s3.example.com/media/media/home/a.jpg"; got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}

	cdn, err := New("https://s3.example.com", "ru-1", "key", "secret", "media", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := cdn.FileURL("media/home/a.jpg"), "https://cdn.example.com/media/home/a.jpg"; got != want {
		t.Errorf("FileURL with public URL: got %q, want %q", got, want)
	}
}
