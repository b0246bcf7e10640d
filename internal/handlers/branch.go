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

// VerifyBranch checks that the caller may act on the branch named by code.
// Existence is checked first, access second: an unknown code is 404 for
// admins and non-admins alike.
func VerifyBranch(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	claims := c.Locals(middleware.CtxClaimsKey).(*auth.Claims)

	users := user.NewService(db)

	type VerifyBranchInput struct {
		BranchCode string `json:"branchCode" validate:"required"`
	}

	var input VerifyBranchInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Branch code is required"})
	}
	if input.BranchCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Branch code is required"})
	}

	branch, err := users.GetBranchByCode(input.BranchCode)
	if err != nil {
		if errors.Is(err, user.ErrBranchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invalid branch code"})
		}
		log.Errorf("verify-branch: branch lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	if err := auth.AuthorizeBranch(claims, branch); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied to this branch"})
	}

	return c.JSON(fiber.Map{
		"message": "Branch access verified",
		"branch":  branch,
	})
}
