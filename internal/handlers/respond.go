// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public portfolio
// API and the session-gated admin API. Handlers decode strict JSON
// payloads, call into the stores, and map outcomes onto the error
// taxonomy: 401/403 for authorization, 422 for validation with the
// offending field named, 404 for missing or unpublished content, and
// 502 for upstream storage failures.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// maxBodyBytes caps request payload size. Bodies are JSON metadata only;
// file bytes never pass through this server.
const maxBodyBytes = 1 << 20

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondFieldError writes a 422 naming the field that failed validation.
func respondFieldError(w http.ResponseWriter, field, msg string) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": msg,
		"field": field,
	})
}

// respondNotFound writes the generic 404 body. Public paths use it for
// unpublished content too, so the response never leaks draft existence.
func respondNotFound(w http.ResponseWriter) {
	respondError(w, http.StatusNotFound, "not found")
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("decode body: unexpected trailing data")
	}
	return nil
}

// unknownField extracts the field name from an unknown-field decode error
// so the 422 can point at it. Returns "" for other decode failures.
func unknownField(err error) string {
	const marker = `unknown field "`
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i == -1 {
		return ""
	}
	rest := msg[i+len(marker):]
	if j := strings.IndexByte(rest, '"'); j != -1 {
		return rest[:j]
	}
	return ""
}

// respondDecodeError maps a decodeJSON failure to a 422, naming the
// unknown field when one caused it.
func respondDecodeError(w http.ResponseWriter, err error) {
	if field := unknownField(err); field != "" {
		respondFieldError(w, field, "unknown field")
		return
	}
	respondError(w, http.StatusUnprocessableEntity, "malformed request body")
}
