package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/handler/middleware"
	"github.com/ourlittleplanet/planet-service/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview returns the couple's dashboard numbers
// GET /api/stats
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	resp, err := h.statsService.Overview(c.Context(), middleware.Couple(c))
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "stats fetched", resp)
}
