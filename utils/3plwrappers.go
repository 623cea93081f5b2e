package utils

import (
	"github.com/google/uuid"
)

// GetUUID returns a random (v4) UUID string.
func GetUUID() string {
	return uuid.New().String()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
