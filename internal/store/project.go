// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atelier/internal/models"
	"atelier/internal/slug"
)

// projectCols is the select list shared by every project query. Tags are
// flattened with array_to_string so they scan through database/sql without
// a driver-level array type.
const projectCols = `
	id, slug, title, summary, location, year, typology, client, services,
	sustainability, array_to_string(tags, ','), body, status, sort_order,
	published_at, created_at, updated_at`

// ProjectStore handles all portfolio project database operations,
// including the owned image collections.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	var tags string
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Location, &p.Year,
		&p.Typology, &p.Client, &p.Services, &p.Sustainability, &tags,
		&p.Body, &p.Status, &p.SortOrder, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = splitTags(tags)
	return p, nil
}

// List returns every project regardless of status, in curated order.
// Used by the admin listing.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT` + projectCols + `
		FROM projects
		ORDER BY sort_order ASC, updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		images, err := loadCoverImage(s.db, "project_images", "project_id", projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Images = images
	}
	return projects, nil
}

// ListPublished returns published projects for the public listing, with
// optional filters. query matches title, summary, or location as a
// case-insensitive substring; tag must be an exact member of the tag set.
// Both filters combine. Each item carries its cover image only.
func (s *ProjectStore) ListPublished(query, tag string) ([]models.Project, error) {
	sqlQuery := `SELECT` + projectCols + ` FROM projects WHERE status = 'PUBLISHED'`
	args := []any{}

	if query != "" {
		args = append(args, "%"+query+"%")
		n := len(args)
		sqlQuery += fmt.Sprintf(
			" AND (title ILIKE $%d OR summary ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}
	if tag != "" {
		args = append(args, tag)
		sqlQuery += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	sqlQuery += " ORDER BY sort_order ASC, updated_at DESC"

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		images, err := loadCoverImage(s.db, "project_images", "project_id", projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Images = images
	}
	return projects, nil
}

// FindByID retrieves a project with its full image set. Returns nil if
// not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`
		SELECT`+projectCols+` FROM projects WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}

	p.Images, err = loadImages(s.db, "project_images", "project_id", p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published project by slug for public
// detail pages. The literal slug is tried first, then its normalized
// form, so stored links survive casing or whitespace noise. Returns nil
// when nothing published matches.
func (s *ProjectStore) FindPublishedBySlug(rawSlug string) (*models.Project, error) {
	candidates := []string{rawSlug}
	if normalized := slug.Generate(rawSlug); normalized != "" && normalized != rawSlug {
		candidates = append(candidates, normalized)
	}

	for _, candidate := range candidates {
		p, err := scanProject(s.db.QueryRow(`
			SELECT`+projectCols+` FROM projects
			WHERE slug = $1 AND status = 'PUBLISHED'
		`, candidate))
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find project by slug: %w", err)
		}

		p.Images, err = loadImages(s.db, "project_images", "project_id", p.ID)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, nil
}

// Create inserts a new project together with its image set in one
// transaction. p.Slug is treated as the desired base and resolved to a
// unique value. Publishing at creation stamps published_at.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(tx, "projects", nil, p.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(p.Status, p.PublishedAt)

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO projects (slug, title, summary, location, year, typology,
		                      client, services, sustainability, tags, body,
		                      status, sort_order, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		        COALESCE(string_to_array(NULLIF($10, ''), ','), '{}'),
		        $11, $12, $13, $14)
		RETURNING id
	`, resolved, p.Title, p.Summary, p.Location, p.Year, p.Typology,
		p.Client, p.Services, p.Sustainability, joinTags(p.Tags), p.Body,
		p.Status, p.SortOrder, publishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := replaceImages(tx, "project_images", "project_id", id, p.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.FindByID(id)
}

// Update rewrites a project's fields and replaces its image set in one
// transaction. Transitioning to PUBLISHED stamps published_at when it is
// not already set; transitioning back to DRAFT clears it.
func (s *ProjectStore) Update(p *models.Project) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(tx, "projects", &p.ID, p.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(p.Status, p.PublishedAt)

	res, err := tx.Exec(`
		UPDATE projects SET
			slug = $1, title = $2, summary = $3, location = $4, year = $5,
			typology = $6, client = $7, services = $8, sustainability = $9,
			tags = COALESCE(string_to_array(NULLIF($10, ''), ','), '{}'),
			body = $11, status = $12, sort_order = $13, published_at = $14,
			updated_at = NOW()
		WHERE id = $15
	`, resolved, p.Title, p.Summary, p.Location, p.Year, p.Typology,
		p.Client, p.Services, p.Sustainability, joinTags(p.Tags), p.Body,
		p.Status, p.SortOrder, publishedAt, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	if err := replaceImages(tx, "project_images", "project_id", p.ID, p.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.FindByID(p.ID)
}

// Delete removes a project. Its images go with it via ON DELETE CASCADE.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Reorder assigns sort_order by position in ids, in one transaction.
// Rows not named keep their current sort_order; sending a partial list
// reorders just that subset.
func (s *ProjectStore) Reorder(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return errors.New("reorder: empty id list")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder projects: %w", err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		if _, err := tx.Exec(`
			UPDATE projects SET sort_order = $1, updated_at = NOW() WHERE id = $2
		`, i, id); err != nil {
			return fmt.Errorf("reorder project %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder projects: %w", err)
	}
	return nil
}

// stampPublishedAt applies the publishing lifecycle to published_at:
// stamped on publish when absent, preserved while published, cleared on
// unpublish.
func stampPublishedAt(status models.Status, current *time.Time) *time.Time {
	if status != models.StatusPublished {
		return nil
	}
	if current != nil {
		return current
	}
	now := time.Now()
	return &now
}
