package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

// RequireWishOwnership checks that the wish named in the :id route
// parameter belongs to the authenticated couple. A missing wish and a
// wish owned by another couple produce the identical WISH_NOT_FOUND
// outcome so that ids cannot be probed across couples.
func RequireWishOwnership(wishRepo repository.WishRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return reject(c, domain.ErrInvalidWishID)
		}

		owner, err := wishRepo.GetOwner(c.Context(), int64(id))
		if err != nil {
			if de, ok := domain.AsError(err); ok {
				return reject(c, de)
			}
			log.Printf("[OWNERSHIP] owner lookup failed: %v", err)
			return reject(c, domain.ErrServiceUnavailable)
		}

		if owner != CoupleCode(c) {
			return reject(c, domain.ErrWishNotFound)
		}

		c.Locals(localWishID, int64(id))
		return c.Next()
	}
}
