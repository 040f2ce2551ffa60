package event

import "encoding/json"

// Frame is the raw client-to-server wire frame.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Authenticate must be the first frame of a realtime connection.
type Authenticate struct {
	Token string `json:"token"`
}

type JoinTeam struct {
	TeamID string `json:"teamId"`
}

type LeaveTeam struct {
	TeamID string `json:"teamId"`
}

type Typing struct {
	TeamID string `json:"teamId"`
}

type StatusChange struct {
	TeamID string `json:"teamId"`
	Status string `json:"status"`
}
