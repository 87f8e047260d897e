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

// archiveCols mirrors projectCols for the archive namespace. The column
// is named constraints_note because "constraints" invites quoting trouble.
const archiveCols = `
	id, slug, title, summary, location, original_year, intervention_year,
	typology, intervention_type, scope, existing_condition, constraints_note,
	strategy, outcome, sustainability, array_to_string(tags, ','), body,
	status, published_at, created_at, updated_at`

// ArchiveStore handles archive entry database operations. Archives have
// no curated sort order; listings fall back to recency.
type ArchiveStore struct {
	db *sql.DB
}

// NewArchiveStore creates a new ArchiveStore with the given database connection.
func NewArchiveStore(db *sql.DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

func scanArchive(row interface{ Scan(...any) error }) (*models.ArchiveProject, error) {
	a := &models.ArchiveProject{}
	var tags string
	err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Location,
		&a.OriginalYear, &a.InterventionYear, &a.Typology,
		&a.InterventionType, &a.Scope, &a.ExistingCondition, &a.Constraints,
		&a.Strategy, &a.Outcome, &a.Sustainability, &tags, &a.Body,
		&a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Tags = splitTags(tags)
	return a, nil
}

// List returns every archive entry regardless of status. Used by the
// admin listing.
func (s *ArchiveStore) List() ([]models.ArchiveProject, error) {
	rows, err := s.db.Query(`
		SELECT` + archiveCols + `
		FROM archive_projects
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	defer rows.Close()

	var archives []models.ArchiveProject
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		archives = append(archives, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range archives {
		images, err := loadCoverImage(s.db, "archive_project_images", "archive_id", archives[i].ID)
		if err != nil {
			return nil, err
		}
		archives[i].Images = images
	}
	return archives, nil
}

// ListPublished returns published archive entries for the public listing,
// with the same query and tag filters as projects, ordered most recently
// updated first.
func (s *ArchiveStore) ListPublished(query, tag string) ([]models.ArchiveProject, error) {
	sqlQuery := `SELECT` + archiveCols + ` FROM archive_projects WHERE status = 'PUBLISHED'`
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
	sqlQuery += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list published archives: %w", err)
	}
	defer rows.Close()

	var archives []models.ArchiveProject
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		archives = append(archives, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range archives {
		images, err := loadCoverImage(s.db, "archive_project_images", "archive_id", archives[i].ID)
		if err != nil {
			return nil, err
		}
		archives[i].Images = images
	}
	return archives, nil
}

// FindByID retrieves an archive entry with its full image set. Returns
// nil if not found.
func (s *ArchiveStore) FindByID(id uuid.UUID) (*models.ArchiveProject, error) {
	a, err := scanArchive(s.db.QueryRow(`
		SELECT`+archiveCols+` FROM archive_projects WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find archive by id: %w", err)
	}

	a.Images, err = loadImages(s.db, "archive_project_images", "archive_id", a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindPublishedBySlug retrieves a published archive entry by slug, trying
// the literal slug first and then its normalized form. Returns nil when
// nothing published matches.
func (s *ArchiveStore) FindPublishedBySlug(rawSlug string) (*models.ArchiveProject, error) {
	candidates := []string{rawSlug}
	if normalized := slug.Generate(rawSlug); normalized != "" && normalized != rawSlug {
		candidates = append(candidates, normalized)
	}

	for _, candidate := range candidates {
		a, err := scanArchive(s.db.QueryRow(`
			SELECT`+archiveCols+` FROM archive_projects
			WHERE slug = $1 AND status = 'PUBLISHED'
		`, candidate))
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find archive by slug: %w", err)
		}

		a.Images, err = loadImages(s.db, "archive_project_images", "archive_id", a.ID)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, nil
}

// Create inserts a new archive entry together with its image set in one
// transaction. a.Slug is treated as the desired base and resolved to a
// unique value.
func (s *ArchiveStore) Create(a *models.ArchiveProject) (*models.ArchiveProject, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(tx, "archive_projects", nil, a.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(a.Status, a.PublishedAt)

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO archive_projects (slug, title, summary, location,
		                              original_year, intervention_year,
		                              typology, intervention_type, scope,
		                              existing_condition, constraints_note,
		                              strategy, outcome, sustainability, tags,
		                              body, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        COALESCE(string_to_array(NULLIF($15, ''), ','), '{}'),
		        $16, $17, $18)
		RETURNING id
	`, resolved, a.Title, a.Summary, a.Location, a.OriginalYear,
		a.InterventionYear, a.Typology, a.InterventionType, a.Scope,
		a.ExistingCondition, a.Constraints, a.Strategy, a.Outcome,
		a.Sustainability, joinTags(a.Tags), a.Body, a.Status, publishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	if err := replaceImages(tx, "archive_project_images", "archive_id", id, a.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	return s.FindByID(id)
}

// Update rewrites an archive entry's fields and replaces its image set in
// one transaction, with the same published_at lifecycle as projects.
func (s *ArchiveStore) Update(a *models.ArchiveProject) (*models.ArchiveProject, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update archive: %w", err)
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(tx, "archive_projects", &a.ID, a.Slug)
	if err != nil {
		return nil, err
	}

	publishedAt := stampPublishedAt(a.Status, a.PublishedAt)

	res, err := tx.Exec(`
		UPDATE archive_projects SET
			slug = $1, title = $2, summary = $3, location = $4,
			original_year = $5, intervention_year = $6, typology = $7,
			intervention_type = $8, scope = $9, existing_condition = $10,
			constraints_note = $11, strategy = $12, outcome = $13,
			sustainability = $14,
			tags = COALESCE(string_to_array(NULLIF($15, ''), ','), '{}'),
			body = $16, status = $17, published_at = $18, updated_at = NOW()
		WHERE id = $19
	`, resolved, a.Title, a.Summary, a.Location, a.OriginalYear,
		a.InterventionYear, a.Typology, a.InterventionType, a.Scope,
		a.ExistingCondition, a.Constraints, a.Strategy, a.Outcome,
		a.Sustainability, joinTags(a.Tags), a.Body, a.Status, publishedAt, a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update archive: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	if err := replaceImages(tx, "archive_project_images", "archive_id", a.ID, a.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update archive: %w", err)
	}
	return s.FindByID(a.ID)
}

// Delete removes an archive entry. Its images go with it via ON DELETE CASCADE.
func (s *ArchiveStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM archive_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete archive: %w", err)
	}
	return nil
}
