package domain

import "time"

// Role represents the authorization level of a member.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a role string, defaulting to USER when empty.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case "":
		return RoleUser, true
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Member is the domain model for registered accounts.
type Member struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
