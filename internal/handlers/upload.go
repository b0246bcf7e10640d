package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"retaildash/internal/auth"
	"retaildash/internal/database"
	"retaildash/internal/middleware"
	"retaildash/internal/platform/user"
)

// LogUpload appends an audit record for a file upload performed by the
// dashboard. Unconditional append; the upload itself happens client-side.
func LogUpload(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	claims := c.Locals(middleware.CtxClaimsKey).(*auth.Claims)

	users := user.NewService(db)

	type LogUploadInput struct {
		BranchID *uint  `json:"branchId"`
		FileName string `json:"fileName"`
		FileSize int64  `json:"fileSize"`
	}

	var input LogUploadInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	entry := &database.UploadLog{
		UserID:   claims.UserID,
		BranchID: input.BranchID,
		FileName: input.FileName,
		FileSize: input.FileSize,
		Status:   "approved",
	}
	if err := users.LogUpload(entry); err != nil {
		log.Errorf("log-upload: insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Upload logged successfully"})
}
