package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware extracts bearer credentials and resolves identities.
//
// It deliberately fails open: a missing or invalid token leaves the request
// anonymous and lets it proceed. Denial happens later at the policy gate, so
// public and protected routes coexist without per-route middleware wiring.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle inspects the Authorization header once per request and populates the
// auth context. Verification is a pure, single-attempt computation; there is
// nothing transient to retry.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authCtx := NewAuthContext()
	ContextInto(c, authCtx)

	tokenStr, ok := resolveBearer(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	identity, err := m.tokens.VerifyToken(tokenStr)
	if err != nil {
		authCtx.Reject()
		m.logger.Debug("token rejected",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Next()
	}

	if err := authCtx.SetIdentity(identity); err != nil {
		return err
	}
	return c.Next()
}

// resolveBearer extracts the token from an "Authorization: Bearer x" header.
func resolveBearer(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
