package domain

import "github.com/google/uuid"

// NewID returns a random (v4) UUID string for client-generated identifiers.
func NewID() string {
	return uuid.NewString()
}
