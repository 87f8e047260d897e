// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/models"
)

// InquiryStore handles prospective-client inquiry database operations.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore creates a new InquiryStore with the given database connection.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create inserts a new inquiry with status NEW.
func (s *InquiryStore) Create(inq *models.Inquiry) (*models.Inquiry, error) {
	result := &models.Inquiry{}
	err := s.db.QueryRow(`
		INSERT INTO inquiries (name, email, phone, project_type, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, project_type, message, status, created_at
	`, inq.Name, inq.Email, inq.Phone, inq.ProjectType, inq.Message).Scan(
		&result.ID, &result.Name, &result.Email, &result.Phone,
		&result.ProjectType, &result.Message, &result.Status, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return result, nil
}

// List returns all inquiries, newest first.
func (s *InquiryStore) List() ([]models.Inquiry, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, phone, project_type, message, status, created_at
		FROM inquiries
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var items []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		if err := rows.Scan(
			&inq.ID, &inq.Name, &inq.Email, &inq.Phone,
			&inq.ProjectType, &inq.Message, &inq.Status, &inq.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		items = append(items, inq)
	}
	return items, rows.Err()
}

// SetStatus moves an inquiry through the handling workflow. Returns
// false when no row matched the id.
func (s *InquiryStore) SetStatus(id uuid.UUID, status models.IntakeStatus) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE inquiries SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return false, fmt.Errorf("set inquiry status: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes an inquiry by ID.
func (s *InquiryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return nil
}

// FeedbackStore handles general feedback database operations.
type FeedbackStore struct {
	db *sql.DB
}

// NewFeedbackStore creates a new FeedbackStore with the given database connection.
func NewFeedbackStore(db *sql.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create inserts a new feedback entry with status NEW. Callers drop
// blank-message submissions before reaching the store.
func (s *FeedbackStore) Create(fb *models.Feedback) (*models.Feedback, error) {
	result := &models.Feedback{}
	err := s.db.QueryRow(`
		INSERT INTO feedback (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, status, created_at
	`, fb.Name, fb.Email, fb.Message).Scan(
		&result.ID, &result.Name, &result.Email,
		&result.Message, &result.Status, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return result, nil
}

// List returns all feedback entries, newest first.
func (s *FeedbackStore) List() ([]models.Feedback, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, message, status, created_at
		FROM feedback
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(
			&fb.ID, &fb.Name, &fb.Email, &fb.Message, &fb.Status, &fb.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

// SetStatus moves a feedback entry through the handling workflow.
// Returns false when no row matched the id.
func (s *FeedbackStore) SetStatus(id uuid.UUID, status models.IntakeStatus) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE feedback SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return false, fmt.Errorf("set feedback status: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a feedback entry by ID.
func (s *FeedbackStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
