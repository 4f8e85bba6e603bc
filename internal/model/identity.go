package model

import "github.com/google/uuid"

// Identity is the authenticated caller as the service layer sees it.
// Handlers build it from verified token claims and pass it into every
// mutating operation; services never read auth state from anywhere else.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}
