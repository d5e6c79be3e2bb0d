package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SeverityID represents a severity label (e.g. "critical", "high")
type SeverityID string

// String returns the string representation
func (id SeverityID) String() string {
	return string(id)
}

// Validate validates the severity ID
func (id SeverityID) Validate() error {
	if id == "" {
		return goerr.New("severity ID is empty")
	}
	return nil
}

// FindingID represents a finding identifier
type FindingID string

// String returns the string representation
func (id FindingID) String() string {
	return string(id)
}

// NewFindingID creates a new FindingID
func NewFindingID() FindingID {
	return FindingID(fmt.Sprintf("finding-%s", uuid.New().String()))
}

// Validate validates the finding ID
func (id FindingID) Validate() error {
	if id == "" {
		return goerr.New("finding ID is empty")
	}
	return nil
}

// InspectorID identifies a live inspector instance
type InspectorID string

// String returns the string representation
func (id InspectorID) String() string {
	return string(id)
}

// NewInspectorID creates a new InspectorID
func NewInspectorID() InspectorID {
	return InspectorID(uuid.New().String())
}

// Validate validates the inspector ID
func (id InspectorID) Validate() error {
	if id == "" {
		return goerr.New("inspector ID is empty")
	}
	return nil
}
