package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"retaildash/internal/auth"
	"retaildash/internal/config"
	"retaildash/internal/database"
	"retaildash/internal/platform/user"
)

// userPayload is the camelCase user shape the register and login responses
// carry, matching the dashboard frontend.
func userPayload(u *database.User) fiber.Map {
	return fiber.Map{
		"id":             u.ID,
		"email":          u.Email,
		"fullName":       u.FullName,
		"role":           u.Role,
		"branchId":       u.BranchID,
		"profilePicture": u.ProfilePicture,
	}
}

func Register(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	users := user.NewService(db)

	type RegisterInput struct {
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,min=6"`
		FullName   string `json:"fullName" validate:"required"`
		BranchCode string `json:"branchCode"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
	}
	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := users.GetByEmail(email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	} else if !errors.Is(err, user.ErrNotFound) {
		log.Errorf("register: user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	// An unknown branch code is ignored; the account is simply created
	// without a branch.
	var branchID *uint
	if input.BranchCode != "" {
		branch, err := users.GetBranchByCode(input.BranchCode)
		if err == nil {
			branchID = &branch.ID
		} else if !errors.Is(err, user.ErrBranchNotFound) {
			log.Errorf("register: branch lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	hash, err := auth.NewPasswordHasher(cfg.BcryptCost).Hash(input.Password)
	if err != nil {
		log.Errorf("register: password hashing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	newUser := &database.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         database.RoleUser,
		BranchID:     branchID,
	}
	if err := users.Create(newUser); err != nil {
		// Lost the race against a concurrent registration with the same
		// email; report it exactly like the pre-check.
		if errors.Is(err, user.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
		}
		log.Errorf("register: insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	token, err := auth.NewTokenService(cfg.JWTSecret).Issue(newUser)
	if err != nil {
		log.Errorf("register: token issuance failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload(newUser),
	})
}

func Login(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	users := user.NewService(db)

	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email and password are required"})
	}
	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email and password are required"})
	}

	// Unknown email and wrong password produce the identical message, so a
	// caller cannot probe which addresses are registered.
	account, err := users.GetByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		log.Errorf("login: user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	if account.PasswordHash == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Please use Google Sign-In"})
	}

	if !auth.NewPasswordHasher(cfg.BcryptCost).Verify(input.Password, account.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	token, err := auth.NewTokenService(cfg.JWTSecret).Issue(account)
	if err != nil {
		log.Errorf("login: token issuance failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(account),
	})
}
