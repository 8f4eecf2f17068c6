package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/handler/middleware"
	"github.com/ourlittleplanet/planet-service/internal/service"
	"github.com/ourlittleplanet/planet-service/pkg/validator"
)

type WishHandler struct {
	wishService *service.WishService
	validator   *validator.Validator
}

func NewWishHandler(wishService *service.WishService, validator *validator.Validator) *WishHandler {
	return &WishHandler{
		wishService: wishService,
		validator:   validator,
	}
}

// List returns one filtered, sorted, paginated page of the couple's wishes
// GET /api/wishes
func (h *WishHandler) List(c *fiber.Ctx) error {
	req := service.ListWishesRequest{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
		Status: c.Query("status", "all"),
		Type:   c.Query("type", "all"),
		Sort:   c.Query("sort", "created_desc"),
		Search: c.Query("search"),
	}

	resp, err := h.wishService.List(c.Context(), middleware.CoupleCode(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "wishes fetched", resp)
}

// Create adds a new wish for the couple
// POST /api/wishes
func (h *WishHandler) Create(c *fiber.Ctx) error {
	var req service.CreateWishRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, domain.ValidationError(err.Error()))
	}

	wish, err := h.wishService.Create(c.Context(), middleware.CoupleCode(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, "wish locked in, things two hearts want together come true faster", wish)
}

// Update applies a partial update to a wish the couple owns
// PUT /api/wishes/:id
func (h *WishHandler) Update(c *fiber.Ctx) error {
	var req service.UpdateWishRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ValidationError("invalid request body"))
	}

	wish, err := h.wishService.Update(c.Context(), middleware.CoupleCode(c), middleware.WishID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	message := "wish updated"
	if req.Completed != nil {
		if *req.Completed {
			message = "wish granted!"
		} else {
			message = "wish reactivated, keep going"
		}
	}

	return respondSuccess(c, fiber.StatusOK, message, wish)
}

// Delete removes a wish the couple owns
// DELETE /api/wishes/:id
func (h *WishHandler) Delete(c *fiber.Ctx) error {
	resp, err := h.wishService.Delete(c.Context(), middleware.CoupleCode(c), middleware.WishID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "wish deleted", resp)
}
