// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all atelier
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"atelier/internal/models"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx so slug resolution
// can run inside the same transaction as the write that depends on it.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// maxSlugProbes bounds the numeric suffix search. Past this the resolver
// falls back to a random suffix so resolution always terminates.
const maxSlugProbes = 50

// resolveSlug returns a slug that is unique within table, starting from
// base and probing base-2, base-3, and so on. A slug already owned by
// existingID is accepted as-is, which keeps updates stable when the title
// has not changed.
func resolveSlug(q rowQuerier, table string, existingID *uuid.UUID, base string) (string, error) {
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 1; i <= maxSlugProbes; i++ {
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		var ownerID uuid.UUID
		err := q.QueryRow(fmt.Sprintf(`SELECT id FROM %s WHERE slug = $1`, table), candidate).Scan(&ownerID)
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("resolve slug: %w", err)
		}
		if existingID != nil && ownerID == *existingID {
			return candidate, nil
		}
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("resolve slug suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s", base, hex.EncodeToString(suffix)), nil
}

// replaceImages swaps the full image set of a parent row inside tx. The
// caller passes images already in display order; position is assigned
// from the slice index so the stored sequence is always dense 0..N-1.
func replaceImages(tx *sql.Tx, table, parentCol string, parentID uuid.UUID, images []models.Image) error {
	if _, err := tx.Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, parentCol), parentID,
	); err != nil {
		return fmt.Errorf("clear images: %w", err)
	}

	for i, img := range images {
		_, err := tx.Exec(fmt.Sprintf(`
			INSERT INTO %s (%s, url, alt, caption, credit, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, table, parentCol),
			parentID, models.UnwrapCDNURL(img.URL), img.Alt,
			img.Caption, img.Credit, img.Notes, i,
		)
		if err != nil {
			return fmt.Errorf("insert image %d: %w", i, err)
		}
	}
	return nil
}

// loadImages fetches the ordered image set of a parent row.
func loadImages(db *sql.DB, table, parentCol string, parentID uuid.UUID) ([]models.Image, error) {
	rows, err := db.Query(fmt.Sprintf(`
		SELECT id, url, alt, caption, credit, notes, position
		FROM %s WHERE %s = $1
		ORDER BY position ASC
	`, table, parentCol), parentID)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(
			&img.ID, &img.URL, &img.Alt, &img.Caption,
			&img.Credit, &img.Notes, &img.Position,
		); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// loadCoverImage fetches only the first image of a parent row, for list
// views. Returns an empty slice when the parent has no images.
func loadCoverImage(db *sql.DB, table, parentCol string, parentID uuid.UUID) ([]models.Image, error) {
	var img models.Image
	err := db.QueryRow(fmt.Sprintf(`
		SELECT id, url, alt, caption, credit, notes, position
		FROM %s WHERE %s = $1
		ORDER BY position ASC
		LIMIT 1
	`, table, parentCol), parentID).Scan(
		&img.ID, &img.URL, &img.Alt, &img.Caption,
		&img.Credit, &img.Notes, &img.Position,
	)
	if err == sql.ErrNoRows {
		return []models.Image{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cover image: %w", err)
	}
	return []models.Image{img}, nil
}

// joinTags flattens a normalized tag set for storage through
// string_to_array. Tags never contain commas after normalization.
func joinTags(tags []string) string {
	return strings.Join(models.NormalizeTags(tags), ",")
}

// splitTags reverses joinTags on rows read back via array_to_string.
func splitTags(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
