package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-service/internal/api/dto"
	"github.com/spec-kit/member-service/internal/auth"
	"github.com/spec-kit/member-service/internal/service"
	apperrors "github.com/spec-kit/member-service/pkg/util"
)

// MembersHandler exposes member management endpoints. Authorization is
// enforced by the access rules declared at route registration; handlers only
// run after the policy gate allowed them.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(members *service.MemberService) *MembersHandler {
	return &MembersHandler{members: members}
}

// Me handles GET /members/me.
func (h *MembersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	member, err := h.members.GetByUsername(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberResponse(member))
}

// GetByID handles GET /members/:id.
func (h *MembersHandler) GetByID(c *fiber.Ctx) error {
	member, err := h.members.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberResponse(member))
}

// GetByUsername handles GET /members/by-username/:username.
func (h *MembersHandler) GetByUsername(c *fiber.Ctx) error {
	member, err := h.members.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberResponse(member))
}

// ListAdmins handles GET /members/admins.
func (h *MembersHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.members.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.MemberResponse, 0, len(admins))
	for _, member := range admins {
		out = append(out, dto.NewMemberResponse(member))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ChangePassword handles PUT /members/:id/password.
func (h *MembersHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}

	if err := h.members.ChangePassword(c.UserContext(), c.Params("id"), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// Delete handles DELETE /members/:id.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	if err := h.members.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "member deleted"})
}
