// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Image is one photograph attached to a project or archive entry. Images
// are owned exclusively by their parent and are replaced wholesale on
// every parent save; Position is always a dense 0..N-1 sequence after
// persistence.
type Image struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Alt      string    `json:"alt"`
	Caption  *string   `json:"caption,omitempty"`
	Credit   *string   `json:"credit,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Position int       `json:"position"`
}

// UnwrapCDNURL detects image URLs that were stored wrapped in the site's
// CDN proxy pattern (path /x/cdn/ with the real target in the "url" query
// parameter) and returns the inner URL. Any other input is returned
// unchanged. Applied once at ingestion so admin and public paths never
// diverge on what is stored.
func UnwrapCDNURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.HasPrefix(u.Path, "/x/cdn/") {
		return raw
	}
	inner := u.Query().Get("url")
	if inner == "" {
		// Some wrapped URLs carry the target as the whole query string.
		if q := u.RawQuery; strings.HasPrefix(q, "http") {
			if dec, err := url.QueryUnescape(q); err == nil {
				return dec
			}
		}
		return raw
	}
	return inner
}
