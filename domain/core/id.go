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

// Domain-specific ID types
type (
	DesignID     ID
	EvaluationID ID
)

// String conversions for domain IDs
func (id DesignID) String() string     { return ID(id).String() }
func (id EvaluationID) String() string { return ID(id).String() }

// ParseDesignID parses a string into DesignID
func ParseDesignID(s string) (DesignID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("design ID cannot be empty")
	}
	return DesignID(s), nil
}

// ParseEvaluationID parses a string into EvaluationID
func ParseEvaluationID(s string) (EvaluationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("evaluation ID cannot be empty")
	}
	return EvaluationID(s), nil
}
