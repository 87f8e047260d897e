// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/models"
	"atelier/internal/slug"
)

const postCols = `
	id, slug, title, excerpt, category, array_to_string(tags, ','), body,
	status, published_at, created_at, updated_at`

// PostStore handles journal post database operations. Posts follow the
// same slug and publishing rules as projects but have no image set.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tags string
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Category, &tags,
		&p.Body, &p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = splitTags(tags)
	return p, nil
}

// List returns every post regardless of status for the admin listing,
// most recently updated first.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT` + postCols + `
		FROM posts
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ListPublished returns published posts for the public journal, newest
// publication first.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT` + postCols + `
		FROM posts
		WHERE status = 'PUBLISHED'
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by id. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT`+postCols+` FROM posts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by slug, trying the
// literal slug first and then its normalized form. Returns nil when
// nothing published matches.
func (s *PostStore) FindPublishedBySlug(rawSlug string) (*models.Post, error) {
	candidates := []string{rawSlug}
	if normalized := slug.Generate(rawSlug); normalized != "" && normalized != rawSlug {
		candidates = append(candidates, normalized)
	}

	for _, candidate := range candidates {
		p, err := scanPost(s.db.QueryRow(`
			SELECT`+postCols+` FROM posts
			WHERE slug = $1 AND status = 'PUBLISHED'
		`, candidate))
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find post by slug: %w", err)
		}
		return p, nil
	}
	return nil, nil
}

// Create inserts a new post. p.Slug is treated as the desired base and
// resolved to a unique value in the posts namespace. Publishing at
// creation stamps published_at.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	resolved, err := resolveSlug(s.db, "posts", nil, p.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(p.Status, p.PublishedAt)

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (slug, title, excerpt, category, tags, body,
		                   status, published_at)
		VALUES ($1, $2, $3, $4,
		        COALESCE(string_to_array(NULLIF($5, ''), ','), '{}'),
		        $6, $7, $8)
		RETURNING id
	`, resolved, p.Title, p.Excerpt, p.Category, joinTags(p.Tags),
		p.Body, p.Status, publishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update rewrites a post's fields with the same published_at lifecycle
// as projects. Returns nil when the id matches nothing.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	resolved, err := resolveSlug(s.db, "posts", &p.ID, p.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(p.Status, p.PublishedAt)

	res, err := s.db.Exec(`
		UPDATE posts SET
			slug = $1, title = $2, excerpt = $3, category = $4,
			tags = COALESCE(string_to_array(NULLIF($5, ''), ','), '{}'),
			body = $6, status = $7, published_at = $8, updated_at = NOW()
		WHERE id = $9
	`, resolved, p.Title, p.Excerpt, p.Category, joinTags(p.Tags),
		p.Body, p.Status, publishedAt, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(p.ID)
}

// Delete removes a post.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
