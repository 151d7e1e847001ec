package domain

import "time"

// Role represents a user's role in the system.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDriver     Role = "driver"
	RoleDispatcher Role = "dispatcher"
)

// User represents a staff account (admin, driver or dispatcher).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
