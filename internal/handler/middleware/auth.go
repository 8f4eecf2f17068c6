package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
	"github.com/ourlittleplanet/planet-service/pkg/jwt"
)

// Locals keys set by the auth middleware for downstream handlers.
const (
	localCoupleCode = "couple_code"
	localCouple     = "couple"
	localClaims     = "claims"
	localWishID     = "wish_id"
)

// extractToken pulls the bearer value out of the request. Priority:
// Authorization header, then the auth cookie, then the token query
// parameter (kept only for link-based flows).
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie := c.Cookies("auth_token"); cookie != "" {
		return cookie
	}

	return c.Query("token")
}

// RequireAuth validates an access-class token and resolves it to a live
// couple. The couple lookup runs fresh on every request: tokens are not
// revocable, so this is the only defense against a deleted couple.
func RequireAuth(tokenService *jwt.TokenService, coupleRepo repository.CoupleRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return reject(c, domain.ErrNoToken)
		}

		claims, err := tokenService.ValidateToken(token, domain.TokenTypeAccess)
		if err != nil {
			return reject(c, domain.ErrInvalidToken)
		}

		couple, err := coupleRepo.GetByCode(c.Context(), claims.CoupleCode)
		if err != nil {
			if de, ok := domain.AsError(err); ok {
				return reject(c, de)
			}
			log.Printf("[AUTH] couple lookup failed: %v", err)
			return reject(c, domain.ErrServiceUnavailable)
		}

		c.Locals(localCoupleCode, couple.CoupleCode)
		c.Locals(localCouple, couple)
		c.Locals(localClaims, claims)

		return c.Next()
	}
}

// OptionalAuth resolves the couple when a valid token is present but
// never blocks the request.
func OptionalAuth(tokenService *jwt.TokenService, coupleRepo repository.CoupleRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := tokenService.ValidateToken(token, domain.TokenTypeAccess)
		if err != nil {
			return c.Next()
		}

		couple, err := coupleRepo.GetByCode(c.Context(), claims.CoupleCode)
		if err != nil {
			return c.Next()
		}

		c.Locals(localCoupleCode, couple.CoupleCode)
		c.Locals(localCouple, couple)
		c.Locals(localClaims, claims)

		return c.Next()
	}
}

// CoupleCode returns the authenticated couple code, or "" for an
// anonymous request.
func CoupleCode(c *fiber.Ctx) string {
	code, _ := c.Locals(localCoupleCode).(string)
	return code
}

// Couple returns the resolved couple, or nil for an anonymous request.
func Couple(c *fiber.Ctx) *domain.Couple {
	couple, _ := c.Locals(localCouple).(*domain.Couple)
	return couple
}

// WishID returns the wish id checked by the ownership guard.
func WishID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(localWishID).(int64)
	return id
}

func reject(c *fiber.Ctx, err *domain.Error) error {
	return c.Status(err.Status).JSON(fiber.Map{
		"success": false,
		"message": err.Message,
		"code":    err.Code,
	})
}
