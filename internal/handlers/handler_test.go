// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"atelier/internal/cache"
	"atelier/internal/database"
	"atelier/internal/middleware"
	"atelier/internal/session"
	"atelier/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "atelier")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "atelier")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Valkey client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "resp:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	Sessions  *session.Store
	Projects  *store.ProjectStore
	Archives  *store.ArchiveStore
	Posts     *store.PostStore
	Inquiries *store.InquiryStore
	Feedback  *store.FeedbackStore
	Users     *store.UserStore
	RespCache *cache.ResponseCache

	Auth          *Auth
	Public        *Public
	AdminProjects *AdminProjects
	AdminArchives *AdminArchives
	AdminPosts    *AdminPosts
	AdminIntake   *AdminIntake
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	projects := store.NewProjectStore(db)
	archives := store.NewArchiveStore(db)
	posts := store.NewPostStore(db)
	inquiries := store.NewInquiryStore(db)
	feedback := store.NewFeedbackStore(db)
	users := store.NewUserStore(db)
	respCache := cache.NewResponseCache(vk, 1*time.Minute)

	return &testEnv{
		DB:        db,
		Valkey:    vk,
		Sessions:  sessions,
		Projects:  projects,
		Archives:  archives,
		Posts:     posts,
		Inquiries: inquiries,
		Feedback:  feedback,
		Users:     users,
		RespCache: respCache,

		Auth:          NewAuth(sessions, users),
		Public:        NewPublic(projects, archives, posts, inquiries, feedback, respCache),
		AdminProjects: NewAdminProjects(projects, respCache),
		AdminArchives: NewAdminArchives(archives, respCache),
		AdminPosts:    NewAdminPosts(posts, respCache),
		AdminIntake:   NewAdminIntake(inquiries, feedback),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// cleanProjects removes test projects by slug prefix.
func cleanProjects(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM projects WHERE slug LIKE $1", slugPrefix+"%")
}

// cleanPosts removes test posts by slug prefix.
func cleanPosts(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM posts WHERE slug LIKE $1", slugPrefix+"%")
}

// cleanIntake removes test inquiry and feedback rows by email.
func cleanIntake(t *testing.T, db *sql.DB, email string) {
	t.Helper()
	db.Exec("DELETE FROM inquiries WHERE email = $1", email)
	db.Exec("DELETE FROM feedback WHERE email = $1", email)
}
