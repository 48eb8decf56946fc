package runtime

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random UUID in canonical form, for services that assign
// the ID of created entries.
func NewID() string {
	return uuid.NewString()
}

// ParseID checks that id holds a UUID and returns its canonical form. The
// ID scalar itself is opaque; services that use NewID can check incoming
// IDs with it.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", NewValidationError("id", "uuid", fmt.Errorf("invalid id %q: %w", id, err))
	}
	return u.String(), nil
}
