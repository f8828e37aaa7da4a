package pipeline

import "github.com/google/uuid"

// newJobID returns a UUIDv7, so job ids sort by submission time.
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
