// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lightshop/internal/media"
	"lightshop/internal/models"
	"lightshop/internal/storage"
)

// maxUploadBatch caps one multipart upload request.
const maxUploadBatch = 200 << 20

// MediaLibrary is the media operations the handlers need.
type MediaLibrary interface {
	Folders(ctx context.Context) ([]models.MediaFolder, error)
	Folder(ctx context.Context, key string) (*models.MediaFolder, error)
	Upload(ctx context.Context, folderKey string, files []*multipart.FileHeader) (*media.UploadResult, error)
	Delete(ctx context.Context, folderKey string, id uuid.UUID) (*models.MediaImage, error)
	BucketImages(ctx context.Context, folderSlug string) ([]storage.Object, error)
}

// Media groups the media library handlers.
type Media struct {
	library MediaLibrary
}

// NewMedia creates the media handlers.
func NewMedia(library MediaLibrary) *Media {
	return &Media{library: library}
}

// Folders lists every folder with its images.
func (h *Media) Folders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.library.Folders(r.Context())
	if err != nil {
		slog.Error("list media failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

// Folder returns one folder with its images.
func (h *Media) Folder(w http.ResponseWriter, r *http.Request) {
	folder, err := h.library.Folder(r.Context(), chi.URLParam(r, "folderID"))
	if errors.Is(err, media.ErrUnknownFolder) {
		writeError(w, http.StatusNotFound, "Folder not found")
		return
	}
	if err != nil {
		slog.Error("list media folder failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// Upload stores the images of a multipart batch in a folder. Files that
// are not images are rejected one by one; the rest are kept.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBatch)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	folderID := chi.URLParam(r, "folderID")
	res, err := h.library.Upload(r.Context(), folderID, files)
	if errors.Is(err, media.ErrUnknownFolder) {
		writeError(w, http.StatusNotFound, "Folder not found")
		return
	}
	if err != nil {
		slog.Error("media upload failed", "folder", folderID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("media uploaded", "folder", folderID, "uploaded", len(res.Uploaded), "rejected", len(res.Rejected))
	writeJSON(w, http.StatusCreated, res)
}

// Delete removes one image from a folder.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "imageID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	folderID := chi.URLParam(r, "folderID")
	img, err := h.library.Delete(r.Context(), folderID, id)
	if errors.Is(err, media.ErrUnknownFolder) {
		writeError(w, http.StatusNotFound, "Folder not found")
		return
	}
	if err != nil {
		slog.Error("media delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if img == nil {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}

	slog.Info("media deleted", "folder", folderID, "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// PublicList lists the image objects of a folder straight from the
// bucket. ?folder= defaults to home.
func (h *Media) PublicList(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("folder"))
	if key == "" {
		key = "home"
	}
	folder, ok := models.FindFolder(key)
	if !ok {
		writeError(w, http.StatusNotFound, "Folder not found")
		return
	}

	images, err := h.library.BucketImages(r.Context(), folder.Slug)
	if err != nil {
		slog.Error("list bucket images failed", "folder", folder.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"folder": folder.Slug,
		"images": images,
		"count":  len(images),
	})
}
