package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"retaildash/internal/auth"
	"retaildash/internal/config"
)

const CtxClaimsKey = "claims"

// AuthMiddleware is a pure verification gate: it checks the bearer token's
// signature and expiry and attaches the embedded claims. It never queries
// the store; claims are trusted as of issuance time.
func AuthMiddleware(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No token provided",
		})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No token provided",
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	// Expired and tampered tokens get the same answer; the client cannot
	// tell them apart.
	claims, err := auth.NewTokenService(cfg.JWTSecret).Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	c.Locals(CtxClaimsKey, claims)

	return c.Next()
}
