package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// EstimateID identifies one produced estimate.
type EstimateID ID

func (id EstimateID) String() string { return ID(id).String() }

// NewEstimateID returns a fresh time-ordered estimate identifier.
func NewEstimateID() EstimateID {
	return EstimateID(NewID())
}
