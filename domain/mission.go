package domain

import (
	"fmt"
	"time"

	"opsroom/errors"
)

type MissionStatus string

const (
	MissionPlanned    MissionStatus = "planned"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
	MissionAborted    MissionStatus = "aborted"
)

type MissionPriority string

const (
	PriorityLow      MissionPriority = "low"
	PriorityMedium   MissionPriority = "medium"
	PriorityHigh     MissionPriority = "high"
	PriorityCritical MissionPriority = "critical"
)

// Mission belongs to exactly one team. Status, priority, title and
// description are mutated by team leaders only.
type Mission struct {
	ID          string
	TeamID      string
	Title       string
	Description string
	Status      MissionStatus
	Priority    MissionPriority
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MissionUpdate carries the fields a leader may change. Nil means unchanged.
type MissionUpdate struct {
	Title       *string
	Description *string
	Status      *MissionStatus
	Priority    *MissionPriority
}

func (s MissionStatus) Validate() error {
	switch s {
	case MissionPlanned, MissionInProgress, MissionCompleted, MissionAborted:
		return nil
	}
	return fmt.Errorf("%w: unknown mission status %q", errors.ErrValidation, string(s))
}

func (p MissionPriority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return nil
	}
	return fmt.Errorf("%w: unknown mission priority %q", errors.ErrValidation, string(p))
}
