// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/store"
)

// AdminProjects groups the admin CRUD and reorder handlers for projects.
// Every write invalidates the public response cache for the kind.
type AdminProjects struct {
	projects  *store.ProjectStore
	respCache *cache.ResponseCache
}

// NewAdminProjects creates a new AdminProjects handler group.
func NewAdminProjects(projects *store.ProjectStore, respCache *cache.ResponseCache) *AdminProjects {
	return &AdminProjects{projects: projects, respCache: respCache}
}

func (h *AdminProjects) invalidate(r *http.Request) {
	if h.respCache != nil {
		h.respCache.InvalidateKind(r.Context(), "projects")
	}
}

// idParam parses the {id} route parameter. A malformed UUID behaves like
// a missing row.
func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// List returns every project, drafts included, in curated order.
func (h *AdminProjects) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List()
	if err != nil {
		slog.Error("admin project list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// Get returns one project by id with its full image set.
func (h *AdminProjects) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	project, err := h.projects.FindByID(id)
	if err != nil {
		slog.Error("admin project lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if project == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Create inserts a new project from a strict payload.
func (h *AdminProjects) Create(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	created, err := h.projects.Create(payload.toProject())
	if err != nil {
		slog.Error("project create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update replaces a project's fields and image set. The stored
// published_at is carried over so the lifecycle stamping in the store
// sees the true current value.
func (h *AdminProjects) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	existing, err := h.projects.FindByID(id)
	if err != nil {
		slog.Error("admin project lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	project := payload.toProject()
	project.ID = id
	project.PublishedAt = existing.PublishedAt
	if payload.SortOrder == nil {
		project.SortOrder = existing.SortOrder
	}

	updated, err := h.projects.Update(project)
	if err != nil {
		slog.Error("project update failed", "id", id, "error", err)
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

// Delete removes a project and its images.
func (h *AdminProjects) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.projects.Delete(id); err != nil {
		slog.Error("project delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

type reorderPayload struct {
	IDs []uuid.UUID `json:"ids"`
}

// Reorder assigns curated sort positions from the submitted id order.
// Partial lists are accepted and touch only the named rows.
func (h *AdminProjects) Reorder(w http.ResponseWriter, r *http.Request) {
	var payload reorderPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if len(payload.IDs) == 0 {
		respondFieldError(w, "ids", "at least one id is required")
		return
	}

	if err := h.projects.Reorder(payload.IDs); err != nil {
		slog.Error("project reorder failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
