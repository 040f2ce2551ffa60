package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat event. When IsEncrypted is set, Content
// holds a serialized encryption envelope, never the plaintext.
type Message struct {
	ID          uuid.UUID
	TeamID      string
	MissionID   string // optional, empty when team-scoped
	SenderID    string
	Content     string
	IsEncrypted bool
	CreatedAt   time.Time
}
