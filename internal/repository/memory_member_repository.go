package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/member-service/internal/domain"
)

// memoryMemberRepository is a map-backed implementation used when no
// Postgres DSN is configured, and by tests. Thread-safe. Returns
// pgx.ErrNoRows for misses so callers handle both backends uniformly.
type memoryMemberRepository struct {
	mu      sync.RWMutex
	members map[string]*domain.Member // id -> member
}

// NewMemoryMemberRepository creates an in-memory implementation.
func NewMemoryMemberRepository() MemberRepository {
	return &memoryMemberRepository{members: make(map[string]*domain.Member)}
}

func (r *memoryMemberRepository) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	member.CreatedAt = time.Now()

	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *memoryMemberRepository) Update(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *memoryMemberRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.members, id)
	return nil
}

func (r *memoryMemberRepository) GetByID(_ context.Context, id string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *memoryMemberRepository) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.Username == username {
			copied := *member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryMemberRepository) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.Email == email {
			copied := *member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryMemberRepository) ListByRole(_ context.Context, role domain.Role) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*domain.Member, 0)
	for _, member := range r.members {
		if member.Role == role {
			copied := *member
			members = append(members, &copied)
		}
	}
	return members, nil
}

func (r *memoryMemberRepository) UpdateLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	member.LastLoginAt = &now
	return nil
}

var _ MemberRepository = (*memoryMemberRepository)(nil)
