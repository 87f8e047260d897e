package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"

	"atelier/internal/handlers"
	"atelier/internal/session"
)

// newTestRouter wires the router with empty handler groups. The session
// store points at an unused client; cookie-less requests never reach it.
func newTestRouter() http.Handler {
	sessions := session.NewStore(redis.NewClient(&redis.Options{}), false)
	return New(Deps{
		Sessions:      sessions,
		Auth:          handlers.NewAuth(sessions, nil),
		Public:        handlers.NewPublic(nil, nil, nil, nil, nil, nil),
		AdminProjects: handlers.NewAdminProjects(nil, nil),
		AdminArchives: handlers.NewAdminArchives(nil, nil),
		AdminPosts:    handlers.NewAdminPosts(nil, nil),
		AdminIntake:   handlers.NewAdminIntake(nil, nil),
		AdminUploads:  handlers.NewAdminUploads(nil),
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("health: got %d, want 200", rr.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()

	paths := []string{
		"/api/admin/projects/",
		"/api/admin/archives/",
		"/api/admin/posts/",
		"/api/admin/inquiries/",
		"/api/admin/feedback/",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s without session: got %d, want 401", path, rr.Code)
		}
	}
}

func TestAdminMutationRequiresCSRF(t *testing.T) {
	r := newTestRouter()

	// A state-changing admin request without the CSRF token stops at the
	// CSRF gate before any auth check.
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("missing CSRF token: got %d, want 403", rr.Code)
	}
}
