package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atelier/internal/models"
)

func TestAdminPostCreatePublishFlow(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() { cleanPosts(t, env.DB, "handler-admin-journal") })

	rr := httptest.NewRecorder()
	env.AdminPosts.Create(rr, httptest.NewRequest(http.MethodPost, "/api/admin/posts",
		strings.NewReader(`{
			"slug": "handler-admin-journal",
			"title": "Journal Entry",
			"category": "research",
			"status": "DRAFT",
			"body": "# Passive strategies\n\nNotes."
		}`)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rr.Code, rr.Body.String())
	}

	var created models.Post
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.PublishedAt != nil {
		t.Error("draft should not carry published_at")
	}

	// Drafts 404 on the public path.
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/handler-admin-journal", nil)
	env.Public.GetPost(rr, withChiURLParam(req, "slug", "handler-admin-journal"))
	if rr.Code != http.StatusNotFound {
		t.Errorf("draft post publicly visible: got %d", rr.Code)
	}

	// Publish through update; published_at gets stamped.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/admin/posts/"+created.ID.String(),
		strings.NewReader(`{
			"slug": "handler-admin-journal",
			"title": "Journal Entry",
			"status": "PUBLISHED",
			"body": "# Passive strategies\n\nNotes."
		}`))
	env.AdminPosts.Update(rr, withChiURLParam(req, "id", created.ID.String()))
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d, body %s", rr.Code, rr.Body.String())
	}

	var updated models.Post
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Error("publish should stamp published_at")
	}

	// The public detail now resolves with the body rendered to HTML.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/posts/handler-admin-journal", nil)
	env.Public.GetPost(rr, withChiURLParam(req, "slug", "handler-admin-journal"))
	if rr.Code != http.StatusOK {
		t.Fatalf("public get: got %d", rr.Code)
	}
	var detail struct {
		BodyHTML string `json:"body_html"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(detail.BodyHTML, "<h1") {
		t.Errorf("body_html not rendered: %q", detail.BodyHTML)
	}
}

func TestAdminPostUnknownFieldRejected(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.AdminPosts.Create(rr, httptest.NewRequest(http.MethodPost, "/api/admin/posts",
		strings.NewReader(`{"title": "Entry", "status": "DRAFT", "sort_order": 3}`)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown field: got %d, want 422", rr.Code)
	}
}
