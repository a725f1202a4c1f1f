package auth

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-service/internal/domain"
	apperrors "github.com/spec-kit/member-service/pkg/util"
)

// OwnershipCheck reports whether the resource belongs to the identity. It is
// an external collaborator call and may perform I/O; a lookup failure is a
// technical error, never a silent denial.
type OwnershipCheck func(ctx context.Context, resourceID string, identity domain.Identity) (bool, error)

// AccessRule declares what a protected operation demands. Declaring any rule,
// even an empty one, requires authentication. A role grant is a superset
// grant and short-circuits the ownership check.
type AccessRule struct {
	RequiredRole *domain.Role
	Ownership    OwnershipCheck
}

// RequireRole builds a rule satisfied by the given role alone.
func RequireRole(role domain.Role) AccessRule {
	return AccessRule{RequiredRole: &role}
}

// RequireOwner builds a rule satisfied only by the resource owner.
func RequireOwner(check OwnershipCheck) AccessRule {
	return AccessRule{Ownership: check}
}

// RequireRoleOrOwner builds a rule satisfied by the role or by ownership.
func RequireRoleOrOwner(role domain.Role, check OwnershipCheck) AccessRule {
	return AccessRule{RequiredRole: &role, Ownership: check}
}

// RequireAuthenticated builds a rule satisfied by any identity.
func RequireAuthenticated() AccessRule {
	return AccessRule{}
}

// Decision is the outcome of evaluating an access rule.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Evaluator decides whether an operation may proceed. It is pure given its
// inputs except for the ownership lookup.
type Evaluator struct{}

// NewEvaluator constructs the policy evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Authorize evaluates a rule against the request's auth context.
//
// Order matters: missing identity denies before anything else (fail closed),
// a matching role allows immediately, and only then is the ownership lookup
// consulted. The returned error reports an ownership lookup failure, which
// callers surface as a server error rather than a denial.
func (e *Evaluator) Authorize(ctx context.Context, authCtx *AuthContext, rule AccessRule, resourceID string) (Decision, error) {
	identity, ok := authCtx.Identity()
	if !ok {
		return DenyUnauthenticated, nil
	}

	if rule.RequiredRole == nil && rule.Ownership == nil {
		return Allow, nil
	}

	if rule.RequiredRole != nil && identity.Role == *rule.RequiredRole {
		return Allow, nil
	}

	if rule.Ownership != nil {
		owns, err := rule.Ownership(ctx, resourceID, *identity)
		if err != nil {
			return DenyForbidden, fmt.Errorf("ownership lookup: %w", err)
		}
		if owns {
			return Allow, nil
		}
	}

	return DenyForbidden, nil
}

// Require wraps a route with an access rule. The resource id is taken from
// the named path parameter; pass an empty name for rules that do not involve
// a resource.
func (e *Evaluator) Require(rule AccessRule, idParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resourceID := ""
		if idParam != "" {
			resourceID = c.Params(idParam)
		}

		decision, err := e.Authorize(c.UserContext(), ContextFrom(c), rule, resourceID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}

		switch decision {
		case Allow:
			return c.Next()
		case DenyUnauthenticated:
			return apperrors.NewUnauthorized("authentication required")
		default:
			return apperrors.NewForbidden("insufficient permissions")
		}
	}
}
