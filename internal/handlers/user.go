package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"retaildash/internal/auth"
	"retaildash/internal/middleware"
	"retaildash/internal/platform/user"
)

func GetCurrentUser(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	claims := c.Locals(middleware.CtxClaimsKey).(*auth.Claims)

	users := user.NewService(db)

	account, err := users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Errorf("me: user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"user": account})
}
