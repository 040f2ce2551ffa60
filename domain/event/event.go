// Package event defines the realtime wire events. One tagged variant per
// named event with a fixed field set; payloads travel as JSON.
package event

import (
	"time"

	"opsroom/domain"
)

// Wire event names. These are part of the client contract and must not change.
const (
	// client -> server
	NameAuthenticate = "authenticate"
	NameJoinTeam     = "join_team"
	NameLeaveTeam    = "leave_team"
	NameTypingStart  = "typing_start"
	NameTypingStop   = "typing_stop"
	NameStatusUpdate = "status_update"

	// server -> client
	NameMessageNew          = "message:new"
	NameMissionStatusUpdate = "mission:status_update"
	NameUserStatusUpdate    = "user:status_update"
	NameNotificationNew     = "notification:new"
	NameTeamMemberJoined    = "team:member_joined"
	NameTeamMemberLeft      = "team:member_left"
	NameUserTyping          = "user_typing"
	NameError               = "error"
)

// Outbound is a server-to-client event ready for delivery.
type Outbound interface {
	EventName() string
}

type MessagePayload struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"teamId"`
	MissionID   string    `json:"missionId,omitempty"`
	SenderID    string    `json:"senderId"`
	Content     string    `json:"content"`
	IsEncrypted bool      `json:"isEncrypted"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToMessagePayload(m domain.Message) MessagePayload {
	return MessagePayload{
		ID:          m.ID.String(),
		TeamID:      m.TeamID,
		MissionID:   m.MissionID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		IsEncrypted: m.IsEncrypted,
		CreatedAt:   m.CreatedAt,
	}
}

type MissionPayload struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"teamId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToMissionPayload(m domain.Mission) MissionPayload {
	return MissionPayload{
		ID:          m.ID,
		TeamID:      m.TeamID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		Priority:    string(m.Priority),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type NotificationPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToNotificationPayload(n domain.Notification) NotificationPayload {
	return NotificationPayload{
		ID:        n.ID.String(),
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Content:   n.Content,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type MemberPayload struct {
	UserID   string    `json:"userId"`
	TeamID   string    `json:"teamId"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

func ToMemberPayload(m domain.Membership) MemberPayload {
	return MemberPayload{
		UserID:   m.UserID,
		TeamID:   m.TeamID,
		Role:     string(m.Role),
		Status:   string(m.Status),
		JoinedAt: m.JoinedAt,
	}
}

type MessageNew struct {
	Message MessagePayload `json:"message"`
	TeamID  string         `json:"teamId"`
}

func (MessageNew) EventName() string { return NameMessageNew }

type MissionStatusUpdate struct {
	Mission MissionPayload `json:"mission"`
	TeamID  string         `json:"teamId"`
}

func (MissionStatusUpdate) EventName() string { return NameMissionStatusUpdate }

type UserStatusUpdate struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	TeamID string `json:"teamId"`
}

func (UserStatusUpdate) EventName() string { return NameUserStatusUpdate }

type NotificationNew struct {
	Notification NotificationPayload `json:"notification"`
}

func (NotificationNew) EventName() string { return NameNotificationNew }

type TeamMemberJoined struct {
	Member MemberPayload `json:"member"`
	TeamID string        `json:"teamId"`
}

func (TeamMemberJoined) EventName() string { return NameTeamMemberJoined }

type TeamMemberLeft struct {
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
}

func (TeamMemberLeft) EventName() string { return NameTeamMemberLeft }

type UserTyping struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

func (UserTyping) EventName() string { return NameUserTyping }

type Error struct {
	Message string `json:"message"`
}

func (Error) EventName() string { return NameError }
