package uid

import "github.com/google/uuid"

// New generates a new unique identifier. Product IDs use this instead of
// a counter derived from the table size, so deleting and re-adding
// products can never hand out a colliding id.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
