package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"retaildash/internal/auth"
	"retaildash/internal/config"
)

func GoogleRedirect(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	resolver := c.Locals("google").(*auth.GoogleResolver)

	state := auth.NewStateSigner(cfg.JWTSecret).Sign()
	return c.Redirect(resolver.AuthCodeURL(state))
}

// GoogleCallback finishes the handshake. The caller here is a browser
// navigation, not an API client, so every failure redirects to the login
// page instead of returning JSON.
func GoogleCallback(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	resolver := c.Locals("google").(*auth.GoogleResolver)

	loginURL := cfg.FrontendURL + "/login"

	if c.Query("error") != "" {
		return c.Redirect(loginURL)
	}
	if !auth.NewStateSigner(cfg.JWTSecret).Verify(c.Query("state")) {
		return c.Redirect(loginURL)
	}

	code := c.Query("code")
	if code == "" {
		return c.Redirect(loginURL)
	}

	profile, err := resolver.FetchProfile(c.UserContext(), code)
	if err != nil {
		log.Errorf("google callback: %v", err)
		return c.Redirect(loginURL)
	}

	account, err := resolver.Resolve(profile)
	if err != nil {
		log.Errorf("google callback: resolve failed: %v", err)
		return c.Redirect(loginURL)
	}

	token, err := auth.NewTokenService(cfg.JWTSecret).Issue(account)
	if err != nil {
		log.Errorf("google callback: token issuance failed: %v", err)
		return c.Redirect(loginURL)
	}

	// Token travels as a query parameter; the frontend's /auth/callback
	// page expects it there.
	return c.Redirect(cfg.FrontendURL + "/auth/callback?token=" + token)
}
