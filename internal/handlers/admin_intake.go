// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"atelier/internal/models"
	"atelier/internal/store"
)

// AdminIntake groups the admin handlers for the two intake queues:
// client inquiries and general feedback. Both share the NEW →
// IN_PROGRESS → DONE workflow.
type AdminIntake struct {
	inquiries *store.InquiryStore
	feedback  *store.FeedbackStore
}

// NewAdminIntake creates a new AdminIntake handler group.
func NewAdminIntake(inquiries *store.InquiryStore, feedback *store.FeedbackStore) *AdminIntake {
	return &AdminIntake{inquiries: inquiries, feedback: feedback}
}

type statusPayload struct {
	Status string `json:"status"`
}

func (p *statusPayload) intakeStatus() (models.IntakeStatus, bool) {
	status := models.IntakeStatus(p.Status)
	return status, status.Valid()
}

// ListInquiries returns all inquiries, newest first.
func (h *AdminIntake) ListInquiries(w http.ResponseWriter, r *http.Request) {
	items, err := h.inquiries.List()
	if err != nil {
		slog.Error("inquiry list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.Inquiry{}
	}
	respondJSON(w, http.StatusOK, items)
}

// SetInquiryStatus moves an inquiry through the handling workflow.
func (h *AdminIntake) SetInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	var payload statusPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	status, valid := payload.intakeStatus()
	if !valid {
		respondFieldError(w, "status", "status must be NEW, IN_PROGRESS, or DONE")
		return
	}

	matched, err := h.inquiries.SetStatus(id, status)
	if err != nil {
		slog.Error("inquiry status update failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !matched {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteInquiry removes an inquiry.
func (h *AdminIntake) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.inquiries.Delete(id); err != nil {
		slog.Error("inquiry delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFeedback returns all feedback entries, newest first.
func (h *AdminIntake) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedback.List()
	if err != nil {
		slog.Error("feedback list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.Feedback{}
	}
	respondJSON(w, http.StatusOK, items)
}

// SetFeedbackStatus moves a feedback entry through the handling workflow.
func (h *AdminIntake) SetFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	var payload statusPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondDecodeError(w, err)
		return
	}
	status, valid := payload.intakeStatus()
	if !valid {
		respondFieldError(w, "status", "status must be NEW, IN_PROGRESS, or DONE")
		return
	}

	matched, err := h.feedback.SetStatus(id, status)
	if err != nil {
		slog.Error("feedback status update failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !matched {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteFeedback removes a feedback entry.
func (h *AdminIntake) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.feedback.Delete(id); err != nil {
		slog.Error("feedback delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
