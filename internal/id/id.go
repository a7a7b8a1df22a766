package id

import "github.com/google/uuid"

// GenerateID creates a random UUID string.
func GenerateID() string {
	return uuid.NewString()
}
