// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// IntakeStatus tracks the handling state of an inquiry or feedback entry.
type IntakeStatus string

const (
	IntakeStatusNew        IntakeStatus = "NEW"
	IntakeStatusInProgress IntakeStatus = "IN_PROGRESS"
	IntakeStatusDone       IntakeStatus = "DONE"
)

// Valid reports whether s is one of the known intake states.
func (s IntakeStatus) Valid() bool {
	switch s {
	case IntakeStatusNew, IntakeStatusInProgress, IntakeStatusDone:
		return true
	}
	return false
}

// Inquiry is a prospective-client contact submission from the public site.
type Inquiry struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	ProjectType string       `json:"project_type"`
	Message     string       `json:"message"`
	Status      IntakeStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Feedback is a general comment submission from the public site.
type Feedback struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Message   string       `json:"message"`
	Status    IntakeStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
