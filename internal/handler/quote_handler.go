package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Random returns a random love quote
// GET /api/quotes/random
func (h *QuoteHandler) Random(c *fiber.Ctx) error {
	quote, err := h.quoteService.Random(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "here is a little something", fiber.Map{
		"quote": quote,
	})
}

// Daily returns the quote of the day
// GET /api/quotes/daily
func (h *QuoteHandler) Daily(c *fiber.Ctx) error {
	quote, err := h.quoteService.Daily(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "today's words for you two", fiber.Map{
		"quote": quote,
	})
}
