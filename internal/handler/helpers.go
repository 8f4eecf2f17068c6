package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

// respondSuccess writes the shared success envelope.
func respondSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError translates an error into the error envelope. Expected
// outcomes carry their own code and status; anything else is logged
// with full context and reported as a generic internal error.
func respondError(c *fiber.Ctx, err error) error {
	if de, ok := domain.AsError(err); ok {
		return c.Status(de.Status).JSON(fiber.Map{
			"success": false,
			"message": de.Message,
			"code":    de.Code,
		})
	}

	log.Printf("[%s] %s - internal error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "the planet hit some turbulence, please try again later",
		"code":    "INTERNAL_ERROR",
	})
}
