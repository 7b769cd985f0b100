// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded images and generates preview
// thumbnails. Decoding covers JPEG, PNG, GIF, BMP and WebP; thumbnails are
// always JPEG. Images already within the thumbnail bounds are left alone
// to avoid upscaling.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ThumbnailSize is the longest side of a generated thumbnail in pixels.
const ThumbnailSize = 400

// ThumbnailQuality is the JPEG quality used for thumbnails.
const ThumbnailQuality = 82

// MaxPixels caps the decoded size of an image. 10000x10000 is roughly
// 400 MB of RGBA.
const MaxPixels = 100_000_000

// ErrTooManyPixels is returned when an image exceeds MaxPixels.
var ErrTooManyPixels = errors.New("imaging: image exceeds pixel limit")

// Info describes an image without decoding its pixels.
type Info struct {
	Format string // "jpeg", "png", "gif", "webp"
	Width  int
	Height int
}

// ProcessedImage holds one generated thumbnail ready for upload.
type ProcessedImage struct {
	Width       int
	Height      int
	Data        []byte
	ContentType string // Always "image/jpeg"
}

// Probe reads the image header and returns its format and dimensions.
func Probe(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Thumbnail scales the image so its longest side is at most maxSide and
// encodes it as JPEG. Returns (nil, nil) when the image already fits.
func Thumbnail(data []byte, maxSide int) (*ProcessedImage, error) {
	if maxSide <= 0 {
		maxSide = ThumbnailSize
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	if w, h := fit(cfg.Width, cfg.Height, maxSide); w == cfg.Width && h == cfg.Height {
		return nil, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxSide)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten transparent pixels onto white.
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: ThumbnailQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode thumbnail (%dx%d): %w", w, h, err)
	}

	return &ProcessedImage{
		Width:       w,
		Height:      h,
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}

// fit returns the dimensions of a w×h image scaled down so that neither
// side exceeds maxSide, preserving aspect ratio.
func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}
