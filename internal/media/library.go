// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media implements the admin media library: a fixed set of
// folders, one per site section, holding uploaded images. Images go to
// object storage when it is configured and are inlined as data URIs when
// it is not. Metadata is kept in PostgreSQL either way.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lightshop/internal/imaging"
	"lightshop/internal/models"
	"lightshop/internal/slug"
	"lightshop/internal/storage"
)

// MaxFileSize is the largest accepted upload (20 MB per file).
const MaxFileSize = 20 << 20

// ErrUnknownFolder is returned for a folder id or slug outside the registry.
var ErrUnknownFolder = errors.New("unknown media folder")

// listedExtensions are the object suffixes returned by BucketImages.
var listedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Store persists image metadata.
type Store interface {
	Create(ctx context.Context, m *models.MediaImage) (*models.MediaImage, error)
	ListByFolder(ctx context.Context, folderID string) ([]*models.MediaImage, error)
	ListAll(ctx context.Context) ([]*models.MediaImage, error)
	Delete(ctx context.Context, folderID string, id uuid.UUID) (*models.MediaImage, error)
}

// ObjectStore is the subset of the S3 client used by the library.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	FileURL(key string) string
}

// Rejection reports a file that was not stored.
type Rejection struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadResult collects the outcome of a batch upload.
type UploadResult struct {
	Uploaded []*models.MediaImage `json:"uploaded"`
	Rejected []Rejection          `json:"rejected"`
}

// Library coordinates metadata and object storage for media folders.
type Library struct {
	store   Store
	objects ObjectStore // nil when object storage is not configured

	// HTTPClient is used by Fetch. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewLibrary creates a Library. Pass a nil ObjectStore to store images as
// data URIs.
func NewLibrary(store Store, objects ObjectStore) *Library {
	return &Library{store: store, objects: objects}
}

// HasStorage reports whether uploads go to object storage.
func (l *Library) HasStorage() bool {
	return l.objects != nil
}

// Folders returns every folder of the registry with its images.
func (l *Library) Folders(ctx context.Context) ([]models.MediaFolder, error) {
	images, err := l.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byFolder := make(map[string][]*models.MediaImage)
	for _, img := range images {
		l.fillThumbURL(img)
		byFolder[img.FolderID] = append(byFolder[img.FolderID], img)
	}

	folders := models.DefaultFolders()
	for i := range folders {
		folders[i].Images = byFolder[folders[i].ID]
		if folders[i].Images == nil {
			folders[i].Images = []*models.MediaImage{}
		}
	}
	return folders, nil
}

// Folder returns one folder, looked up by id or slug, with its images.
func (l *Library) Folder(ctx context.Context, key string) (*models.MediaFolder, error) {
	folder, ok := models.FindFolder(key)
	if !ok {
		return nil, ErrUnknownFolder
	}
	images, err := l.store.ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		l.fillThumbURL(img)
	}
	if images == nil {
		images = []*models.MediaImage{}
	}
	folder.Images = images
	return &folder, nil
}

// Upload stores a batch of files in a folder. Files are handled one after
// another; a file that is not an image, is too large or cannot be read is
// reported in Rejected and does not stop the rest of the batch. Returned
// errors are reserved for failures that affect the whole batch.
func (l *Library) Upload(ctx context.Context, folderKey string, files []*multipart.FileHeader) (*UploadResult, error) {
	folder, ok := models.FindFolder(folderKey)
	if !ok {
		return nil, ErrUnknownFolder
	}

	result := &UploadResult{
		Uploaded: []*models.MediaImage{},
		Rejected: []Rejection{},
	}
	for _, fh := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, rejection := readFile(fh)
		if rejection != "" {
			result.Rejected = append(result.Rejected, Rejection{Name: fh.Filename, Error: rejection})
			continue
		}

		img, err := l.Add(ctx, folder, fh.Filename, data)
		if errors.Is(err, errNotImage) {
			result.Rejected = append(result.Rejected, Rejection{Name: fh.Filename, Error: notImageMessage(fh.Filename)})
			continue
		}
		if err != nil {
			slog.Error("media upload failed", "error", err, "folder", folder.Slug, "name", fh.Filename)
			result.Rejected = append(result.Rejected, Rejection{Name: fh.Filename, Error: "Не удалось загрузить файл " + fh.Filename})
			continue
		}
		result.Uploaded = append(result.Uploaded, img)
	}

	slog.Info("media batch uploaded", "folder", folder.Slug,
		"uploaded", len(result.Uploaded), "rejected", len(result.Rejected))
	return result, nil
}

var errNotImage = errors.New("not an image")

// Add stores a single image from memory. The content type is sniffed from
// the data, never taken from the client.
func (l *Library) Add(ctx context.Context, folder models.MediaFolder, name string, data []byte) (*models.MediaImage, error) {
	contentType := detectContentType(name, data)
	if !models.IsImage(contentType) {
		return nil, errNotImage
	}

	img := &models.MediaImage{
		ID:          uuid.New(),
		FolderID:    folder.ID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}
	if info, err := imaging.Probe(data); err == nil {
		img.Width, img.Height = info.Width, info.Height
	} else if contentType != "image/svg+xml" {
		slog.Debug("image dimensions unavailable", "name", name, "error", err)
	}

	if l.objects == nil {
		img.URL = dataURI(contentType, data)
		return l.store.Create(ctx, img)
	}

	key := objectKey(folder.Slug, name, img.ID, contentType)
	if err := l.objects.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}
	img.S3Key = &key
	img.URL = l.objects.FileURL(key)

	if thumbable(contentType) {
		l.uploadThumbnail(ctx, folder.Slug, img, data)
	}

	created, err := l.store.Create(ctx, img)
	if err != nil {
		// Don't leave orphaned objects behind a failed insert.
		l.deleteObjects(ctx, img)
		return nil, err
	}
	return created, nil
}

// Fetch downloads an image and adds it to a folder. It keeps a permanent
// copy of files that are only reachable through expiring URLs.
func (l *Library) Fetch(ctx context.Context, folderKey, name, rawURL string) (*models.MediaImage, error) {
	folder, ok := models.FindFolder(folderKey)
	if !ok {
		return nil, ErrUnknownFolder
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("fetch image: larger than %d bytes", MaxFileSize)
	}
	return l.Add(ctx, folder, name, data)
}

// uploadThumbnail generates and stores a preview. Failures only cost the
// preview, so they are logged and otherwise ignored.
func (l *Library) uploadThumbnail(ctx context.Context, folderSlug string, img *models.MediaImage, data []byte) {
	thumb, err := imaging.Thumbnail(data, imaging.ThumbnailSize)
	if err != nil {
		slog.Warn("thumbnail generation failed", "error", err, "name", img.Name)
		return
	}
	if thumb == nil {
		return
	}

	key := fmt.Sprintf("media/%s/thumbs/%s.jpg", folderSlug, img.ID)
	if err := l.objects.Upload(ctx, key, thumb.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data))); err != nil {
		slog.Warn("thumbnail upload failed", "error", err, "key", key)
		return
	}
	img.ThumbS3Key = &key
	img.ThumbURL = l.objects.FileURL(key)
}

// Delete removes an image from a folder and best-effort deletes its
// objects. Returns (nil, nil) when the image is not in that folder.
func (l *Library) Delete(ctx context.Context, folderKey string, id uuid.UUID) (*models.MediaImage, error) {
	folder, ok := models.FindFolder(folderKey)
	if !ok {
		return nil, ErrUnknownFolder
	}
	deleted, err := l.store.Delete(ctx, folder.ID, id)
	if err != nil || deleted == nil {
		return nil, err
	}
	l.deleteObjects(ctx, deleted)
	return deleted, nil
}

func (l *Library) deleteObjects(ctx context.Context, img *models.MediaImage) {
	if l.objects == nil {
		return
	}
	for _, key := range []*string{img.S3Key, img.ThumbS3Key} {
		if key == nil {
			continue
		}
		if err := l.objects.Delete(ctx, *key); err != nil {
			slog.Warn("s3 media delete failed", "error", err, "key", *key)
		}
	}
}

// BucketImages lists image objects stored under media/{slug}/ directly
// from the bucket. Thumbnails are skipped. Without object storage the
// list is empty.
func (l *Library) BucketImages(ctx context.Context, folderSlug string) ([]storage.Object, error) {
	images := []storage.Object{}
	if l.objects == nil {
		return images, nil
	}

	objects, err := l.objects.List(ctx, "media/"+folderSlug+"/")
	if err != nil {
		return nil, err
	}
	for _, obj := range objects {
		if strings.Contains(obj.Key, "/thumbs/") || !listedImage(obj.Key) {
			continue
		}
		images = append(images, obj)
	}
	return images, nil
}

func (l *Library) fillThumbURL(img *models.MediaImage) {
	if l.objects != nil && img.ThumbS3Key != nil {
		img.ThumbURL = l.objects.FileURL(*img.ThumbS3Key)
	}
}

// readFile opens and reads an uploaded file, enforcing MaxFileSize. A
// non-empty string is the rejection message.
func readFile(fh *multipart.FileHeader) ([]byte, string) {
	if fh.Size > MaxFileSize {
		return nil, tooLargeMessage(fh.Filename, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "Не удалось прочитать файл " + fh.Filename
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, "Не удалось прочитать файл " + fh.Filename
	}
	if len(data) > MaxFileSize {
		return nil, tooLargeMessage(fh.Filename, int64(len(data)))
	}
	return data, ""
}

func tooLargeMessage(name string, size int64) string {
	return fmt.Sprintf("Файл %s (%s) превышает 20 МБ", name, models.FormatSize(size))
}

func notImageMessage(name string) string {
	return fmt.Sprintf("Файл %s не является изображением", name)
}

// detectContentType sniffs the first 512 bytes. SVG sniffs as XML or text,
// so the extension decides in that case.
func detectContentType(name string, data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.EqualFold(filepath.Ext(name), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.HasPrefix(contentType, "text/plain")) &&
		bytes.Contains(data, []byte("<svg")) {
		return "image/svg+xml"
	}
	return contentType
}

func thumbable(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/bmp":
		return true
	}
	// GIF is excluded to keep animation; SVG is vector.
	return false
}

func objectKey(folderSlug, name string, id uuid.UUID, contentType string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || !validExt(ext) {
		ext = extensionFromType(contentType)
	}
	return fmt.Sprintf("media/%s/%s-%s%s", folderSlug, slug.Filename(name), id, ext)
}

func validExt(ext string) bool {
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return len(ext) > 1
}

// extensionFromType returns a file extension for known image types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}

func listedImage(key string) bool {
	lower := strings.ToLower(key)
	for _, ext := range listedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
