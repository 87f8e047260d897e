// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/store"
)

// AdminArchives groups the admin CRUD handlers for archive entries.
// Archives carry no curated sort order, so there is no reorder endpoint.
type AdminArchives struct {
	archives  *store.ArchiveStore
	respCache *cache.ResponseCache
}

// NewAdminArchives creates a new AdminArchives handler group.
func NewAdminArchives(archives *store.ArchiveStore, respCache *cache.ResponseCache) *AdminArchives {
	return &AdminArchives{archives: archives, respCache: respCache}
}

func (h *AdminArchives) invalidate(r *http.Request) {
	if h.respCache != nil {
		h.respCache.InvalidateKind(r.Context(), "archives")
	}
}

// List returns every archive entry, drafts included.
func (h *AdminArchives) List(w http.ResponseWriter, r *http.Request) {
	archives, err := h.archives.List()
	if err != nil {
		slog.Error("admin archive list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if archives == nil {
		archives = []models.ArchiveProject{}
	}
	respondJSON(w, http.StatusOK, archives)
}

// Get returns one archive entry by id with its full image set.
func (h *AdminArchives) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	archive, err := h.archives.FindByID(id)
	if err != nil {
		slog.Error("admin archive lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if archive == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, archive)
}

// Create inserts a new archive entry from a strict payload.
func (h *AdminArchives) Create(w http.ResponseWriter, r *http.Request) {
	var payload archivePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	created, err := h.archives.Create(payload.toArchive())
	if err != nil {
		slog.Error("archive create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update replaces an archive entry's fields and image set.
func (h *AdminArchives) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	existing, err := h.archives.FindByID(id)
	if err != nil {
		slog.Error("admin archive lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	var payload archivePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	archive := payload.toArchive()
	archive.ID = id
	archive.PublishedAt = existing.PublishedAt

	updated, err := h.archives.Update(archive)
	if err != nil {
		slog.Error("archive update failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes an archive entry and its images.
func (h *AdminArchives) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.archives.Delete(id); err != nil {
		slog.Error("archive delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
