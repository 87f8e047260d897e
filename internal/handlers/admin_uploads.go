// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"atelier/internal/storage"
)

// AdminUploads handles presigned upload intermediation. The server never
// touches file bytes; it only issues short-lived write URLs.
type AdminUploads struct {
	storage *storage.Client
}

// NewAdminUploads creates a new AdminUploads handler group. storage may
// be nil when object storage is not configured.
func NewAdminUploads(storage *storage.Client) *AdminUploads {
	return &AdminUploads{storage: storage}
}

type presignPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Presign returns a presigned PUT URL and the eventual public URL for
// an image upload. Presign failures surface as 502 because this is an
// admin-only path where the upstream message is actionable.
func (h *AdminUploads) Presign(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusBadGateway, "object storage is not configured")
		return
	}

	var payload presignPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(payload.Filename) == "" {
		respondFieldError(w, "filename", "filename is required")
		return
	}

	upload, err := h.storage.PresignUpload(r.Context(), payload.Filename, payload.ContentType)
	if err != nil {
		slog.Error("presign failed", "filename", payload.Filename, "error", err)
		respondError(w, http.StatusBadGateway, "presign failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, upload)
}

type deleteUploadPayload struct {
	Key string `json:"key"`
}

// Delete removes an uploaded object, used when an editor discards an
// image before saving the record that references it.
func (h *AdminUploads) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusBadGateway, "object storage is not configured")
		return
	}

	var payload deleteUploadPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(payload.Key) == "" {
		respondFieldError(w, "key", "key is required")
		return
	}

	if err := h.storage.Delete(r.Context(), payload.Key); err != nil {
		slog.Error("upload delete failed", "key", payload.Key, "error", err)
		respondError(w, http.StatusBadGateway, "delete failed: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
