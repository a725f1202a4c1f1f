package events

import (
	"time"

	"github.com/spec-kit/member-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberRegistered EventType = "member_registered"
	EventMemberLoggedIn   EventType = "member_logged_in"
	EventPasswordChanged  EventType = "password_changed"
	EventMemberDeleted    EventType = "member_deleted"
)

// Event represents a domain event emitted by services. Payloads carry account
// metadata only; credentials and hashes never appear in events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MemberID  string      `json:"member_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberRegisteredPayload payload.
type MemberRegisteredPayload struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// MemberLoggedInPayload payload.
type MemberLoggedInPayload struct {
	Username string `json:"username"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	Username string `json:"username"`
}

// MemberDeletedPayload payload.
type MemberDeletedPayload struct {
	Username string `json:"username"`
}
