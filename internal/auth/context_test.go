package auth

import (
	"errors"
	"testing"

	"github.com/spec-kit/member-service/internal/domain"
)

func TestAuthContextWriteOnce(t *testing.T) {
	t.Parallel()

	authCtx := NewAuthContext()
	if _, ok := authCtx.Identity(); ok {
		t.Fatal("fresh context reports an identity")
	}
	if authCtx.State() != StateNoToken {
		t.Fatalf("fresh context state = %q, want %q", authCtx.State(), StateNoToken)
	}

	first := &domain.Identity{Subject: "alice", Role: domain.RoleUser}
	if err := authCtx.SetIdentity(first); err != nil {
		t.Fatalf("SetIdentity() error = %v", err)
	}
	if authCtx.State() != StateVerified {
		t.Errorf("state = %q, want %q", authCtx.State(), StateVerified)
	}

	identity, ok := authCtx.Identity()
	if !ok || identity.Subject != "alice" {
		t.Fatalf("Identity() = %+v, %v", identity, ok)
	}

	second := &domain.Identity{Subject: "mallory", Role: domain.RoleAdmin}
	if err := authCtx.SetIdentity(second); !errors.Is(err, ErrIdentityAlreadySet) {
		t.Fatalf("second SetIdentity() error = %v, want ErrIdentityAlreadySet", err)
	}

	identity, _ = authCtx.Identity()
	if identity.Subject != "alice" {
		t.Errorf("identity overwritten to %q", identity.Subject)
	}
}

func TestAuthContextReject(t *testing.T) {
	t.Parallel()

	authCtx := NewAuthContext()
	authCtx.Reject()

	if authCtx.State() != StateRejected {
		t.Errorf("state = %q, want %q", authCtx.State(), StateRejected)
	}
	if _, ok := authCtx.Identity(); ok {
		t.Error("rejected context reports an identity")
	}
}
