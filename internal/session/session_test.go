// Session integration tests. Skipped when Valkey is not available.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
		client.Close()
	})
	return client
}

// cookieRequest builds a request carrying the session cookie set by a
// previous response.
func cookieRequest(t *testing.T, rr *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieName {
			req.AddCookie(c)
			return req
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore(testClient(t), false)
	ctx := context.Background()

	rr := httptest.NewRecorder()
	userID := uuid.New()
	_, err := store.Create(ctx, rr, &Data{
		UserID: userID,
		Email:  "session-test@example.com",
		Role:   "ADMIN",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := cookieRequest(t, rr)
	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if data == nil || data.UserID != userID {
		t.Fatalf("round trip: got %+v", data)
	}
	if data.TwoFADone {
		t.Error("new session should start with 2FA pending")
	}

	// Update flips 2FA completion in place.
	data.TwoFADone = true
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("update: %v", err)
	}
	data, _ = store.Get(ctx, req)
	if data == nil || !data.TwoFADone {
		t.Error("update did not persist")
	}

	// Destroy removes the session.
	destroyRR := httptest.NewRecorder()
	if err := store.Destroy(ctx, destroyRR, req); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	data, err = store.Get(ctx, req)
	if err != nil {
		t.Fatalf("get after destroy: %v", err)
	}
	if data != nil {
		t.Error("session should be gone after destroy")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	store := NewStore(testClient(t), false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if data != nil {
		t.Error("no cookie should mean no session")
	}
}
