package domain

import (
	"fmt"
	"time"

	"opsroom/errors"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifMessage       NotificationType = "message"
	NotifStatusChange  NotificationType = "status_change"
	NotifMissionUpdate NotificationType = "mission_update"
	NotifAlert         NotificationType = "alert"
)

// Notification targets exactly one user. Created by the fan-out only;
// the read flag is mutated by the owning user only.
type Notification struct {
	ID        uuid.UUID
	UserID    string
	Type      NotificationType
	Title     string
	Content   string
	Read      bool
	CreatedAt time.Time
}

func (t NotificationType) Validate() error {
	switch t {
	case NotifMessage, NotifStatusChange, NotifMissionUpdate, NotifAlert:
		return nil
	}
	return fmt.Errorf("%w: unknown notification type %q", errors.ErrValidation, string(t))
}
