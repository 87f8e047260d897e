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

// AdminPosts groups the admin CRUD handlers for journal posts.
type AdminPosts struct {
	posts     *store.PostStore
	respCache *cache.ResponseCache
}

// NewAdminPosts creates a new AdminPosts handler group.
func NewAdminPosts(posts *store.PostStore, respCache *cache.ResponseCache) *AdminPosts {
	return &AdminPosts{posts: posts, respCache: respCache}
}

func (h *AdminPosts) invalidate(r *http.Request) {
	if h.respCache != nil {
		h.respCache.InvalidateKind(r.Context(), "posts")
	}
}

// List returns every post, drafts included.
func (h *AdminPosts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		slog.Error("admin post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// Get returns one post by id.
func (h *AdminPosts) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("admin post lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create inserts a new post from a strict payload.
func (h *AdminPosts) Create(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	created, err := h.posts.Create(payload.toPost())
	if err != nil {
		slog.Error("post create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update replaces a post's fields.
func (h *AdminPosts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("admin post lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	if field, msg := payload.validate(); field != "" {
		respondFieldError(w, field, msg)
		return
	}

	post := payload.toPost()
	post.ID = id
	post.PublishedAt = existing.PublishedAt

	updated, err := h.posts.Update(post)
	if err != nil {
		slog.Error("post update failed", "id", id, "error", err)
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

// Delete removes a post.
func (h *AdminPosts) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.posts.Delete(id); err != nil {
		slog.Error("post delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
