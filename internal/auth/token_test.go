package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/member-service/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		role    domain.Role
	}{
		{name: "user role", subject: "alice", role: domain.RoleUser},
		{name: "admin role", subject: "root", role: domain.RoleAdmin},
		{name: "subject with dots", subject: "a.b.c@example.com", role: domain.RoleUser},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tm := NewTokenManager(testSecret, 60)
			token, exp, err := tm.GenerateToken(tt.subject, tt.role)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if !exp.After(time.Now()) {
				t.Errorf("expiry %v not in the future", exp)
			}

			identity, err := tm.VerifyToken(token)
			if err != nil {
				t.Fatalf("VerifyToken() error = %v", err)
			}
			if identity.Subject != tt.subject {
				t.Errorf("Subject = %q, want %q", identity.Subject, tt.subject)
			}
			if identity.Role != tt.role {
				t.Errorf("Role = %q, want %q", identity.Role, tt.role)
			}
		})
	}
}

func TestVerifyTokenTampering(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 60)
	token, _, err := tm.GenerateToken("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// Flipping any character of any segment must fail verification; a
	// tampered token never yields an identity. The final character of a
	// segment is skipped: its trailing bits fall outside the decoded bytes.
	for segment := range parts {
		for pos := 0; pos < len(parts[segment])-1; pos++ {
			mutated := make([]string, 3)
			copy(mutated, parts)

			raw := []byte(mutated[segment])
			if raw[pos] == 'A' {
				raw[pos] = 'B'
			} else {
				raw[pos] = 'A'
			}
			mutated[segment] = string(raw)

			candidate := strings.Join(mutated, ".")
			if candidate == token {
				continue
			}

			identity, err := tm.VerifyToken(candidate)
			if err == nil {
				t.Fatalf("segment %d pos %d: tampered token verified", segment, pos)
			}
			if identity != nil {
				t.Fatalf("segment %d pos %d: tampered token returned identity", segment, pos)
			}
			if !errors.Is(err, ErrTokenSignature) && !errors.Is(err, ErrTokenMalformed) && !errors.Is(err, ErrTokenExpired) {
				t.Fatalf("segment %d pos %d: unexpected error %v", segment, pos, err)
			}
		}
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager(testSecret, 60)
	verifier := NewTokenManager("another-secret-another-secret-32", 60)

	token, _, err := issuer.GenerateToken("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenSignature", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tm := NewTokenManager(testSecret, 60)
	tm.now = func() time.Time { return start }

	token, exp, err := tm.GenerateToken("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Just before expiry the token is still good.
	tm.now = func() time.Time { return exp.Add(-time.Second) }
	if _, err := tm.VerifyToken(token); err != nil {
		t.Fatalf("VerifyToken() before expiry error = %v", err)
	}

	// One second past expiry it is not. No skew tolerance is applied.
	tm.now = func() time.Time { return exp.Add(time.Second) }
	if _, err := tm.VerifyToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "two segments", token: "abc.def"},
		{name: "garbage segments", token: "a.b.c"},
	}

	tm := NewTokenManager(testSecret, 60)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity, err := tm.VerifyToken(tt.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("VerifyToken(%q) error = %v, want ErrTokenMalformed", tt.token, err)
			}
			if identity != nil {
				t.Errorf("VerifyToken(%q) returned identity", tt.token)
			}
		})
	}
}
