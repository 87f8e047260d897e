// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"atelier/internal/models"
	"atelier/internal/slug"
)

// Validation limits for content fields.
const (
	minTitleRunes = 2
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxBodyLen    = 100_000
	maxFieldLen   = 1_000
	minImageURL   = 5
)

// imagePayload is one submitted image. Order is accepted for client
// convenience but carries no meaning: the persisted position is always
// the array index, so the authoritative order is whatever the client
// last submitted.
type imagePayload struct {
	URL     string  `json:"url"`
	Alt     string  `json:"alt"`
	Caption *string `json:"caption"`
	Credit  *string `json:"credit"`
	Notes   *string `json:"notes"`
	Order   int     `json:"order"`
}

// projectPayload is the strict create/update body for projects.
type projectPayload struct {
	Slug           *string        `json:"slug"`
	Title          string         `json:"title"`
	Summary        *string        `json:"summary"`
	Location       *string        `json:"location"`
	Year           *int           `json:"year"`
	Typology       *string        `json:"typology"`
	Client         *string        `json:"client"`
	Services       *string        `json:"services"`
	Sustainability *string        `json:"sustainability"`
	Tags           []string       `json:"tags"`
	Body           *string        `json:"body"`
	Status         string         `json:"status"`
	SortOrder      *int           `json:"sort_order"`
	Images         []imagePayload `json:"images"`
}

// archivePayload is the strict create/update body for archive entries.
type archivePayload struct {
	Slug              *string        `json:"slug"`
	Title             string         `json:"title"`
	Summary           *string        `json:"summary"`
	Location          *string        `json:"location"`
	OriginalYear      *int           `json:"original_year"`
	InterventionYear  *int           `json:"intervention_year"`
	Typology          *string        `json:"typology"`
	InterventionType  *string        `json:"intervention_type"`
	Scope             *string        `json:"scope"`
	ExistingCondition *string        `json:"existing_condition"`
	Constraints       *string        `json:"constraints"`
	Strategy          *string        `json:"strategy"`
	Outcome           *string        `json:"outcome"`
	Sustainability    *string        `json:"sustainability"`
	Tags              []string       `json:"tags"`
	Body              *string        `json:"body"`
	Status            string         `json:"status"`
	Images            []imagePayload `json:"images"`
}

// postPayload is the strict create/update body for journal posts.
type postPayload struct {
	Slug     *string  `json:"slug"`
	Title    string   `json:"title"`
	Excerpt  *string  `json:"excerpt"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Body     *string  `json:"body"`
	Status   string   `json:"status"`
}

// validateTitle checks the shared title rules. Returns a message or "".
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < minTitleRunes {
		return "title must be at least 2 characters"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	return ""
}

// validateStatus checks the publishing state field.
func validateStatus(status string) string {
	if !models.Status(status).Valid() {
		return "status must be DRAFT or PUBLISHED"
	}
	return ""
}

// validateImages checks every submitted image. Returns (field, message)
// for the first failure, or ("", "").
func validateImages(images []imagePayload) (string, string) {
	for _, img := range images {
		if utf8.RuneCountInString(strings.TrimSpace(img.URL)) < minImageURL {
			return "images.url", "image url must be at least 5 characters"
		}
		if strings.TrimSpace(img.Alt) == "" {
			return "images.alt", "image alt text is required"
		}
	}
	return "", ""
}

// validateProject checks a project payload. Returns (field, message) for
// the first failure, or ("", "").
func (p *projectPayload) validate() (string, string) {
	if msg := validateTitle(p.Title); msg != "" {
		return "title", msg
	}
	if p.Slug != nil && utf8.RuneCountInString(*p.Slug) > maxSlugLen {
		return "slug", "slug is too long (max 300 characters)"
	}
	if msg := validateStatus(p.Status); msg != "" {
		return "status", msg
	}
	if p.Body != nil && utf8.RuneCountInString(*p.Body) > maxBodyLen {
		return "body", "body is too long (max 100,000 characters)"
	}
	return validateImages(p.Images)
}

func (p *archivePayload) validate() (string, string) {
	if msg := validateTitle(p.Title); msg != "" {
		return "title", msg
	}
	if p.Slug != nil && utf8.RuneCountInString(*p.Slug) > maxSlugLen {
		return "slug", "slug is too long (max 300 characters)"
	}
	if msg := validateStatus(p.Status); msg != "" {
		return "status", msg
	}
	if p.Body != nil && utf8.RuneCountInString(*p.Body) > maxBodyLen {
		return "body", "body is too long (max 100,000 characters)"
	}
	return validateImages(p.Images)
}

func (p *postPayload) validate() (string, string) {
	if msg := validateTitle(p.Title); msg != "" {
		return "title", msg
	}
	if p.Slug != nil && utf8.RuneCountInString(*p.Slug) > maxSlugLen {
		return "slug", "slug is too long (max 300 characters)"
	}
	if msg := validateStatus(p.Status); msg != "" {
		return "status", msg
	}
	if p.Body != nil && utf8.RuneCountInString(*p.Body) > maxBodyLen {
		return "body", "body is too long (max 100,000 characters)"
	}
	return "", ""
}

// slugBase derives the slug resolution base: an explicit slug wins over
// the title, and both pass through normalization.
func slugBase(explicit *string, title string) string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return slug.Generate(*explicit)
	}
	return slug.Generate(title)
}

// toImages converts submitted images to model images. Submission array
// order is authoritative; the order field in the payload is ignored.
func toImages(payloads []imagePayload) []models.Image {
	images := make([]models.Image, len(payloads))
	for i, p := range payloads {
		images[i] = models.Image{
			URL:     strings.TrimSpace(p.URL),
			Alt:     strings.TrimSpace(p.Alt),
			Caption: p.Caption,
			Credit:  p.Credit,
			Notes:   p.Notes,
		}
	}
	return images
}

// toProject builds the model from a validated payload.
func (p *projectPayload) toProject() *models.Project {
	proj := &models.Project{
		Slug:           slugBase(p.Slug, p.Title),
		Title:          strings.TrimSpace(p.Title),
		Summary:        p.Summary,
		Location:       p.Location,
		Year:           p.Year,
		Typology:       p.Typology,
		Client:         p.Client,
		Services:       p.Services,
		Sustainability: p.Sustainability,
		Tags:           p.Tags,
		Body:           p.Body,
		Status:         models.Status(p.Status),
		Images:         toImages(p.Images),
	}
	if p.SortOrder != nil {
		proj.SortOrder = *p.SortOrder
	}
	return proj
}

// toPost builds the model from a validated payload.
func (p *postPayload) toPost() *models.Post {
	return &models.Post{
		Slug:     slugBase(p.Slug, p.Title),
		Title:    strings.TrimSpace(p.Title),
		Excerpt:  p.Excerpt,
		Category: p.Category,
		Tags:     p.Tags,
		Body:     p.Body,
		Status:   models.Status(p.Status),
	}
}

// toArchive builds the model from a validated payload.
func (p *archivePayload) toArchive() *models.ArchiveProject {
	return &models.ArchiveProject{
		Slug:              slugBase(p.Slug, p.Title),
		Title:             strings.TrimSpace(p.Title),
		Summary:           p.Summary,
		Location:          p.Location,
		OriginalYear:      p.OriginalYear,
		InterventionYear:  p.InterventionYear,
		Typology:          p.Typology,
		InterventionType:  p.InterventionType,
		Scope:             p.Scope,
		ExistingCondition: p.ExistingCondition,
		Constraints:       p.Constraints,
		Strategy:          p.Strategy,
		Outcome:           p.Outcome,
		Sustainability:    p.Sustainability,
		Tags:              p.Tags,
		Body:              p.Body,
		Status:            models.Status(p.Status),
		Images:            toImages(p.Images),
	}
}
