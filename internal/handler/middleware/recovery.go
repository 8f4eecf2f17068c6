package middleware

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// RecoveryMiddleware recovers from panics and returns the generic
// internal error envelope without leaking internals to the client
func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Printf("PANIC: %v\n%s", r, stack)

				err := c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "the planet hit some turbulence, please try again later",
					"code":    "INTERNAL_ERROR",
				})
				if err != nil {
					log.Printf("Error sending panic response: %v", err)
				}
			}
		}()

		return c.Next()
	}
}
