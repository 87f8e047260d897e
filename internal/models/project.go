// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the publishing state of a project or archive entry.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// Valid reports whether s is one of the known publishing states.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Project represents one case study in the current portfolio. Projects
// carry a manual sort_order used for curated listing, independent of
// recency.
type Project struct {
	ID             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Summary        *string    `json:"summary,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Year           *int       `json:"year,omitempty"`
	Typology       *string    `json:"typology,omitempty"`
	Client         *string    `json:"client,omitempty"`
	Services       *string    `json:"services,omitempty"`
	Sustainability *string    `json:"sustainability,omitempty"`
	Tags           []string   `json:"tags"`
	Body           *string    `json:"body,omitempty"`
	Status         Status     `json:"status"`
	SortOrder      int        `json:"sort_order"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Images         []Image    `json:"images"`
}

// IsPublished returns true if the project is visible on public paths.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}

// NormalizeTags trims, lowercases, de-duplicates, and sorts a tag list.
// Commas are stripped because tags are persisted through a text[] column
// round-tripped via string_to_array/array_to_string.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, ",", " ")))
		t = strings.Join(strings.Fields(t), " ")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
