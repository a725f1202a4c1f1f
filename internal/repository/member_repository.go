package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/member-service/internal/domain"
)

// MemberRepository defines persistence access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByUsername(ctx context.Context, username string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Member, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (username, password_hash, name, email, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		member.Username,
		member.PasswordHash,
		member.Name,
		member.Email,
		member.Role,
	).Scan(&member.ID, &member.CreatedAt)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	const query = `
        UPDATE members SET username=$1, password_hash=$2, name=$3, email=$4, role=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		member.Username,
		member.PasswordHash,
		member.Name,
		member.Email,
		member.Role,
		member.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, username, password_hash, name, email, role, created_at, last_login_at
        FROM members WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	const query = `
        SELECT id, username, password_hash, name, email, role, created_at, last_login_at
        FROM members WHERE username=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	const query = `
        SELECT id, username, password_hash, name, email, role, created_at, last_login_at
        FROM members WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *memberRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Member, error) {
	const query = `
        SELECT id, username, password_hash, name, email, role, created_at, last_login_at
        FROM members WHERE role=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.Username,
			&member.PasswordHash,
			&member.Name,
			&member.Email,
			&member.Role,
			&member.CreatedAt,
			&member.LastLoginAt,
		); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

func (r *memberRepository) UpdateLastLogin(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE members SET last_login_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) scanOne(row pgx.Row) (*domain.Member, error) {
	var member domain.Member
	if err := row.Scan(
		&member.ID,
		&member.Username,
		&member.PasswordHash,
		&member.Name,
		&member.Email,
		&member.Role,
		&member.CreatedAt,
		&member.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
