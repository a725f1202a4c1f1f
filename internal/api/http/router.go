package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-service/internal/api/http/handlers"
	"github.com/spec-kit/member-service/internal/auth"
	"github.com/spec-kit/member-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Members        *handlers.MembersHandler
	AuthMiddleware *auth.AuthMiddleware
	Policy         *auth.Evaluator
	Ownership      auth.OwnershipCheck
}

// RegisterRoutes wires HTTP routes. The authentication middleware runs on
// every request and never rejects by itself; each protected route declares
// its access rule here and the policy gate enforces it before the handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	members := app.Group("/members")
	members.Get("/me",
		cfg.Policy.Require(auth.RequireAuthenticated(), ""),
		cfg.Members.Me)
	members.Get("/admins",
		cfg.Policy.Require(auth.RequireRole(domain.RoleAdmin), ""),
		cfg.Members.ListAdmins)
	members.Get("/by-username/:username",
		cfg.Policy.Require(auth.RequireRole(domain.RoleAdmin), ""),
		cfg.Members.GetByUsername)
	members.Get("/:id",
		cfg.Policy.Require(auth.RequireRoleOrOwner(domain.RoleAdmin, cfg.Ownership), "id"),
		cfg.Members.GetByID)
	// Password changes are owner-only; the admin role does not bypass this.
	members.Put("/:id/password",
		cfg.Policy.Require(auth.RequireOwner(cfg.Ownership), "id"),
		cfg.Members.ChangePassword)
	members.Delete("/:id",
		cfg.Policy.Require(auth.RequireRoleOrOwner(domain.RoleAdmin, cfg.Ownership), "id"),
		cfg.Members.Delete)
}
