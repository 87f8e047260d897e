// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchiveProject represents a legacy or restoration work entry. Archives
// live in their own table and slug namespace; a project and an archive
// may share the same slug without conflict.
type ArchiveProject struct {
	ID                uuid.UUID  `json:"id"`
	Slug              string     `json:"slug"`
	Title             string     `json:"title"`
	Summary           *string    `json:"summary,omitempty"`
	Location          *string    `json:"location,omitempty"`
	OriginalYear      *int       `json:"original_year,omitempty"`
	InterventionYear  *int       `json:"intervention_year,omitempty"`
	Typology          *string    `json:"typology,omitempty"`
	InterventionType  *string    `json:"intervention_type,omitempty"`
	Scope             *string    `json:"scope,omitempty"`
	ExistingCondition *string    `json:"existing_condition,omitempty"`
	Constraints       *string    `json:"constraints,omitempty"`
	Strategy          *string    `json:"strategy,omitempty"`
	Outcome           *string    `json:"outcome,omitempty"`
	Sustainability    *string    `json:"sustainability,omitempty"`
	Tags              []string   `json:"tags"`
	Body              *string    `json:"body,omitempty"`
	Status            Status     `json:"status"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Images            []Image    `json:"images"`
}

// IsPublished returns true if the archive entry is visible on public paths.
func (a *ArchiveProject) IsPublished() bool {
	return a.Status == StatusPublished
}
