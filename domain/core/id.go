package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ProjectID identifies a persisted pipeline result
type ProjectID ID

func (id ProjectID) String() string { return ID(id).String() }

// NewProjectID creates a new time-ordered project identifier
func NewProjectID() ProjectID {
	return ProjectID(NewID())
}

// ParseProjectID parses a string into a ProjectID. Blank or non-UUID input is
// rejected so repository lookups never see junk keys.
func ParseProjectID(s string) (ProjectID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("project ID cannot be empty")
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", fmt.Errorf("invalid project ID %q: %w", trimmed, err)
	}
	return ProjectID(trimmed), nil
}
