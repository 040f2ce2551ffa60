// Package domain contains the core entities of the system.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

type User struct {
	ID           string
	Email        string
	CallSign     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Identity is the authenticated context resolved from a bearer credential.
// It is attached to HTTP requests and realtime sessions alike.
type Identity struct {
	UserID string
	Email  string
	Role   string
}
