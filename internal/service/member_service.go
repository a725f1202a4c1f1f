package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/member-service/internal/auth"
	"github.com/spec-kit/member-service/internal/config"
	"github.com/spec-kit/member-service/internal/domain"
	"github.com/spec-kit/member-service/internal/events"
	"github.com/spec-kit/member-service/internal/repository"
	apperrors "github.com/spec-kit/member-service/pkg/util"
)

// MemberService coordinates registration, login and member management flows.
type MemberService struct {
	members    repository.MemberRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewMemberService builds the service.
func NewMemberService(cfg config.Config, members repository.MemberRepository, dispatcher events.Dispatcher) *MemberService {
	return &MemberService{
		members:    members,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new member account. Duplicate usernames and emails are
// validation failures with specific messages. The plaintext password is
// discarded after hashing.
func (s *MemberService) Register(ctx context.Context, username, password, name, email, roleStr string) (*domain.Member, error) {
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": roleStr})
	}

	if _, err := s.members.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewValidationError("username already exists", map[string]any{"username": username})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	if _, err := s.members.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already in use", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Email:        email,
		Role:         role,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMemberRegistered, member.ID, events.MemberRegisteredPayload{
		Username: member.Username,
		Email:    member.Email,
		Role:     member.Role,
	})
	return member, nil
}

// Login authenticates a member and issues an access token. The failure
// response never distinguishes an unknown username from a wrong password.
func (s *MemberService) Login(ctx context.Context, username, password string) (*domain.Member, string, time.Time, error) {
	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if err := s.members.UpdateLastLogin(ctx, member.ID); err != nil {
		return nil, "", time.Time{}, err
	}
	// Keep the returned snapshot in step with the stored row.
	loginAt := time.Now()
	member.LastLoginAt = &loginAt

	token, exp, err := s.tokenMgr.GenerateToken(member.Username, member.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventMemberLoggedIn, member.ID, events.MemberLoggedInPayload{Username: member.Username})
	return member, token, exp, nil
}

// ChangePassword verifies the current password before storing the new hash.
// A current-password mismatch is a validation failure, distinct from the
// authorization decision made at the route gate.
func (s *MemberService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return err
	}

	if err := auth.ComparePassword(member.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("current password does not match", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	member.PasswordHash = hash
	if err := s.members.Update(ctx, member); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, member.ID, events.PasswordChangedPayload{Username: member.Username})
	return nil
}

// GetByID returns a member by id.
func (s *MemberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return nil, err
	}
	return member, nil
}

// GetByUsername returns a member by username.
func (s *MemberService) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"username": username})
		}
		return nil, err
	}
	return member, nil
}

// ListAdmins returns members holding the ADMIN role.
func (s *MemberService) ListAdmins(ctx context.Context) ([]*domain.Member, error) {
	return s.members.ListByRole(ctx, domain.RoleAdmin)
}

// Delete removes a member account.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return err
	}

	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventMemberDeleted, member.ID, events.MemberDeletedPayload{Username: member.Username})
	return nil
}

// IsOwner reports whether the resource id belongs to the identity. An unknown
// subject is simply not the owner; only a storage failure is an error, and it
// is surfaced to the caller rather than treated as denial.
func (s *MemberService) IsOwner(ctx context.Context, resourceID string, identity domain.Identity) (bool, error) {
	member, err := s.members.GetByUsername(ctx, identity.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return member.ID == resourceID, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *MemberService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *MemberService) publish(ctx context.Context, eventType events.EventType, memberID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
