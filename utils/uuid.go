package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new time-ordered unique identifier string.
// UUIDv7 keeps identifiers ascending with creation time, which the listing
// queries rely on as a stable tie-break.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// IsValidID reports whether s is a well-formed identifier
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
