package models

import "testing"

// TestIsImage verifies that IsImage correctly identifies image content
// types by checking for the "image/" prefix.
func TestIsImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{name: "jpeg", contentType: "image/jpeg", want: true},
		{name: "png", contentType: "image/png", want: true},
		{name: "gif", contentType: "image/gif", want: true},
		{name: "webp", contentType: "image/webp", want: true},
		{name: "svg+xml", contentType: "image/svg+xml", want: true},

		{name: "pdf", contentType: "application/pdf", want: false},
		{name: "plain text", contentType: "text/plain; charset=utf-8", want: false},
		{name: "mp4 video", contentType: "video/mp4", want: false},
		{name: "octet-stream", contentType: "application/octet-stream", want: false},

		{name: "empty content type", contentType: "", want: false},
		{name: "only image prefix no slash", contentType: "image", want: false},
		{name: "IMAGE uppercase", contentType: "IMAGE/PNG", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.contentType); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 Б"},
		{1023, "1023 Б"},
		{1024, "1 КБ"},
		{1536, "2 КБ"},
		{1048575, "1024 КБ"},
		{1048576, "1,0 МБ"},
		{25 * 1048576 / 2, "12,5 МБ"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
