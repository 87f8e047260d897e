// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"atelier/internal/cache"
	"atelier/internal/markdown"
	"atelier/internal/models"
	"atelier/internal/store"
)

// Public groups the unauthenticated read and intake handlers. Published
// content only; drafts 404 here exactly like missing rows.
type Public struct {
	projects  *store.ProjectStore
	archives  *store.ArchiveStore
	posts     *store.PostStore
	inquiries *store.InquiryStore
	feedback  *store.FeedbackStore
	respCache *cache.ResponseCache
}

// NewPublic creates a new Public handler group. respCache may be nil,
// which disables detail-page caching.
func NewPublic(
	projects *store.ProjectStore,
	archives *store.ArchiveStore,
	posts *store.PostStore,
	inquiries *store.InquiryStore,
	feedback *store.FeedbackStore,
	respCache *cache.ResponseCache,
) *Public {
	return &Public{
		projects:  projects,
		archives:  archives,
		posts:     posts,
		inquiries: inquiries,
		feedback:  feedback,
		respCache: respCache,
	}
}

// projectDetail is a public project response with the body rendered to HTML.
type projectDetail struct {
	models.Project
	BodyHTML string `json:"body_html,omitempty"`
}

// archiveDetail is a public archive response with the body rendered to HTML.
type archiveDetail struct {
	models.ArchiveProject
	BodyHTML string `json:"body_html,omitempty"`
}

// postDetail is a public journal response with the body rendered to HTML.
type postDetail struct {
	models.Post
	BodyHTML string `json:"body_html,omitempty"`
}

// Health reports liveness.
func (h *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProjects returns published projects. Supports q (substring over
// title, summary, location) and tag (exact membership) query filters.
func (h *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	projects, err := h.projects.ListPublished(q, tag)
	if err != nil {
		slog.Error("public project list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject returns one published project by slug, body rendered to
// HTML, with the serialized response cached in Valkey.
func (h *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	cacheKey := cache.ProjectKey(slugParam)
	if h.respCache != nil {
		if body, ok := h.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	project, err := h.projects.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("public project lookup failed", "slug", slugParam, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if project == nil {
		respondNotFound(w)
		return
	}

	detail := projectDetail{Project: *project}
	if project.Body != nil {
		html, err := markdown.ToHTML(*project.Body)
		if err != nil {
			slog.Error("project body render failed", "slug", project.Slug, "error", err)
		} else {
			detail.BodyHTML = html
		}
	}

	body, err := json.Marshal(detail)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if h.respCache != nil {
		h.respCache.Set(r.Context(), cacheKey, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ListArchives returns published archive entries with the same filters
// as projects.
func (h *Public) ListArchives(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	archives, err := h.archives.ListPublished(q, tag)
	if err != nil {
		slog.Error("public archive list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if archives == nil {
		archives = []models.ArchiveProject{}
	}
	respondJSON(w, http.StatusOK, archives)
}

// GetArchive returns one published archive entry by slug.
func (h *Public) GetArchive(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	cacheKey := cache.ArchiveKey(slugParam)
	if h.respCache != nil {
		if body, ok := h.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	archive, err := h.archives.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("public archive lookup failed", "slug", slugParam, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if archive == nil {
		respondNotFound(w)
		return
	}

	detail := archiveDetail{ArchiveProject: *archive}
	if archive.Body != nil {
		html, err := markdown.ToHTML(*archive.Body)
		if err != nil {
			slog.Error("archive body render failed", "slug", archive.Slug, "error", err)
		} else {
			detail.BodyHTML = html
		}
	}

	body, err := json.Marshal(detail)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if h.respCache != nil {
		h.respCache.Set(r.Context(), cacheKey, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ListPosts returns published journal posts, newest publication first.
func (h *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished()
	if err != nil {
		slog.Error("public post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// GetPost returns one published post by slug, body rendered to HTML.
func (h *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	cacheKey := cache.PostKey(slugParam)
	if h.respCache != nil {
		if body, ok := h.respCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	post, err := h.posts.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("public post lookup failed", "slug", slugParam, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		respondNotFound(w)
		return
	}

	detail := postDetail{Post: *post}
	if post.Body != nil {
		html, err := markdown.ToHTML(*post.Body)
		if err != nil {
			slog.Error("post body render failed", "slug", post.Slug, "error", err)
		} else {
			detail.BodyHTML = html
		}
	}

	body, err := json.Marshal(detail)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if h.respCache != nil {
		h.respCache.Set(r.Context(), cacheKey, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

type inquiryPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"project_type"`
	Message     string `json:"message"`
}

// CreateInquiry stores a prospective-client contact submission with
// status NEW. Open to the public; no rate limit by design.
func (h *Public) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var payload inquiryPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		respondFieldError(w, "name", "name is required")
		return
	}
	if strings.TrimSpace(payload.Email) == "" {
		respondFieldError(w, "email", "email is required")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		respondFieldError(w, "message", "message is required")
		return
	}

	created, err := h.inquiries.Create(&models.Inquiry{
		Name:        strings.TrimSpace(payload.Name),
		Email:       strings.TrimSpace(payload.Email),
		Phone:       strings.TrimSpace(payload.Phone),
		ProjectType: strings.TrimSpace(payload.ProjectType),
		Message:     strings.TrimSpace(payload.Message),
	})
	if err != nil {
		slog.Error("inquiry create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type feedbackPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CreateFeedback stores a general comment. A blank message is dropped
// silently and still reports success, so bots probing the form learn
// nothing.
func (h *Public) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	_, err := h.feedback.Create(&models.Feedback{
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.TrimSpace(payload.Email),
		Message: strings.TrimSpace(payload.Message),
	})
	if err != nil {
		slog.Error("feedback create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
