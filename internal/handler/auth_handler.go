package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/handler/middleware"
	"github.com/ourlittleplanet/planet-service/internal/service"
	"github.com/ourlittleplanet/planet-service/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Register creates a new planet for an unused couple code
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, domain.ValidationError(err.Error()))
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, "planet created, welcome to your own little world", resp)
}

// Login exchanges a couple code for tokens, auto-registering unused codes
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, domain.ValidationError(err.Error()))
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	message := "welcome back to your little planet"
	status := fiber.StatusOK
	if resp.IsNewPlanet {
		message = "planet created, welcome to your own little world"
		status = fiber.StatusCreated
	}

	return respondSuccess(c, status, message, resp)
}

// Refresh exchanges a refresh token for a new access token
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, domain.ValidationError(err.Error()))
	}

	resp, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "token refreshed", resp)
}

// Verify confirms the caller's token and echoes the resolved couple
// GET /api/auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	couple := middleware.Couple(c)
	return respondSuccess(c, fiber.StatusOK, "token is valid", fiber.Map{
		"couple": couple,
	})
}

// UpdateProfile changes the couple's names and/or anchor date
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, domain.ValidationError(err.Error()))
	}

	couple, err := h.authService.UpdateProfile(c.Context(), middleware.CoupleCode(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "profile updated", fiber.Map{
		"couple": couple,
	})
}
