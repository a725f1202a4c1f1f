package dto

import (
	"time"

	"github.com/spec-kit/member-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// RegisterRequest payload for new members.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// PasswordChangeRequest payload for password updates.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MemberResponse is the wire representation of a member. The password hash is
// never part of it.
type MemberResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
}

// NewMemberResponse maps a domain member onto its wire shape.
func NewMemberResponse(member *domain.Member) MemberResponse {
	return MemberResponse{
		ID:          member.ID,
		Username:    member.Username,
		Name:        member.Name,
		Email:       member.Email,
		Role:        member.Role,
		CreatedAt:   member.CreatedAt,
		LastLoginAt: member.LastLoginAt,
	}
}
