package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-service/internal/api/dto"
	"github.com/spec-kit/member-service/internal/service"
	apperrors "github.com/spec-kit/member-service/pkg/util"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	members *service.MemberService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(members *service.MemberService) *AuthHandler {
	return &AuthHandler{members: members}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	member, token, _, err := h.members.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		Token:    token,
		Username: member.Username,
		Role:     member.Role,
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.Email == "" {
		return apperrors.NewValidationError("username, password, name, email required", nil)
	}

	member, err := h.members.Register(c.UserContext(), req.Username, req.Password, req.Name, req.Email, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewMemberResponse(member))
}
