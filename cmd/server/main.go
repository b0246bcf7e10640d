package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"retaildash/internal/auth"
	"retaildash/internal/config"
	"retaildash/internal/database"
	"retaildash/internal/handlers"
	"retaildash/internal/middleware"
	"retaildash/internal/platform/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	google := auth.NewGoogleResolver(cfg, user.NewService(db))

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("google", google)
		return c.Next()
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Server is running"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/google", handlers.GoogleRedirect)
	authGroup.Get("/google/callback", handlers.GoogleCallback)

	protected := authGroup.Group("", middleware.AuthMiddleware)
	protected.Get("/me", handlers.GetCurrentUser)
	protected.Post("/verify-branch", handlers.VerifyBranch)
	protected.Post("/log-upload", handlers.LogUpload)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
