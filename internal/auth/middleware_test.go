package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/member-service/internal/domain"
)

type probeResponse struct {
	State   string `json:"state"`
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

func newProbeApp(tm *TokenManager) *fiber.App {
	app := fiber.New()
	middleware := NewAuthMiddleware(tm, zap.NewNop())
	app.Use(middleware.Handle)
	app.Get("/probe", func(c *fiber.Ctx) error {
		authCtx := ContextFrom(c)
		resp := probeResponse{State: string(authCtx.State())}
		if identity, ok := authCtx.Identity(); ok {
			resp.Subject = identity.Subject
			resp.Role = string(identity.Role)
		}
		return c.JSON(resp)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 60)
	validToken, _, err := tm.GenerateToken("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredIssuer := NewTokenManager(testSecret, 60)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expiredIssuer.GenerateToken("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantState   TokenState
		wantSubject string
	}{
		{
			name:      "no header stays anonymous",
			header:    "",
			wantState: StateNoToken,
		},
		{
			name:      "non-bearer scheme ignored",
			header:    "Basic YWxpY2U6cHcx",
			wantState: StateNoToken,
		},
		{
			name:      "garbage token rejected but request continues",
			header:    "Bearer not-a-token",
			wantState: StateRejected,
		},
		{
			name:      "expired token rejected but request continues",
			header:    "Bearer " + expiredToken,
			wantState: StateRejected,
		},
		{
			name:        "valid token attaches identity",
			header:      "Bearer " + validToken,
			wantState:   StateVerified,
			wantSubject: "alice",
		},
		{
			name:        "bearer scheme is case-insensitive",
			header:      "bearer " + validToken,
			wantState:   StateVerified,
			wantSubject: "alice",
		},
	}

	app := newProbeApp(tm)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			// Fail-open: the middleware itself never terminates a request.
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
			}

			var probe probeResponse
			if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if probe.State != string(tt.wantState) {
				t.Errorf("state = %q, want %q", probe.State, tt.wantState)
			}
			if probe.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", probe.Subject, tt.wantSubject)
			}
		})
	}
}

func TestResolveBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "empty header", header: "", want: "", wantOK: false},
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "lowercase scheme", header: "bearer tok", want: "tok", wantOK: true},
		{name: "missing token", header: "Bearer ", want: "", wantOK: false},
		{name: "wrong scheme", header: "Token abc", want: "", wantOK: false},
		{name: "scheme only", header: "Bearer", want: "", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := resolveBearer(tt.header)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("resolveBearer(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
