// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is one journal entry: studio notes, research, net-zero strategy.
// Posts share the publishing lifecycle with projects but carry no image
// collection and no curated sort order; the public listing is by
// publication date.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	Body        *string    `json:"body,omitempty"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is visible on public paths.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}
