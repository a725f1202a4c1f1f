package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-service/internal/domain"
)

const authContextKey = "auth_context"

// TokenState records the terminal outcome of credential extraction for a
// request. Useful for diagnostics; authorization decisions only look at
// whether an identity is present.
type TokenState string

const (
	// StateNoToken means no credential accompanied the request.
	StateNoToken TokenState = "NO_TOKEN"
	// StateVerified means a credential was presented and verified.
	StateVerified TokenState = "VERIFIED"
	// StateRejected means a credential was presented but failed verification.
	StateRejected TokenState = "REJECTED"
)

// ErrIdentityAlreadySet reports a second identity write within one request,
// which is a logic error rather than a runtime condition to recover from.
var ErrIdentityAlreadySet = errors.New("auth context identity already set")

// AuthContext is the per-request, write-once holder for the resolved
// identity. It is owned exclusively by the request that created it and is
// discarded when the request ends. An AuthContext without an identity means
// the request is anonymous.
type AuthContext struct {
	identity *domain.Identity
	state    TokenState
}

// NewAuthContext returns an empty, anonymous context.
func NewAuthContext() *AuthContext {
	return &AuthContext{state: StateNoToken}
}

// SetIdentity attaches the verified identity exactly once.
func (a *AuthContext) SetIdentity(identity *domain.Identity) error {
	if a.identity != nil {
		return ErrIdentityAlreadySet
	}
	a.identity = identity
	a.state = StateVerified
	return nil
}

// Reject marks the request as carrying an invalid credential. The identity
// stays empty; downstream policy evaluation treats the request as anonymous.
func (a *AuthContext) Reject() {
	a.state = StateRejected
}

// Identity returns the attached identity, or false for anonymous requests.
func (a *AuthContext) Identity() (*domain.Identity, bool) {
	if a.identity == nil {
		return nil, false
	}
	return a.identity, true
}

// State reports the credential extraction outcome.
func (a *AuthContext) State() TokenState {
	return a.state
}

// ContextInto stores the auth context in the request locals.
func ContextInto(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(authContextKey, authCtx)
}

// ContextFrom retrieves the request's auth context. Requests that never
// passed through the authentication middleware read as anonymous.
func ContextFrom(c *fiber.Ctx) *AuthContext {
	val := c.Locals(authContextKey)
	if val == nil {
		return NewAuthContext()
	}
	authCtx, ok := val.(*AuthContext)
	if !ok {
		return NewAuthContext()
	}
	return authCtx
}

// IdentityFromContext is a shortcut for handlers that only need the identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	return ContextFrom(c).Identity()
}
