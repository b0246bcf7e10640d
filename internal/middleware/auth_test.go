package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/auth"
	"retaildash/internal/config"
	"retaildash/internal/database"
)

func newTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		return c.Next()
	})
	app.Get("/protected", AuthMiddleware, func(c *fiber.Ctx) error {
		claims := c.Locals(CtxClaimsKey).(*auth.Claims)
		return c.JSON(fiber.Map{"email": claims.Email})
	})
	return app
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newTestApp(cfg)

	token, err := auth.NewTokenService(cfg.JWTSecret).Issue(&database.User{
		ID: 1, Email: "clerk@example.com", Role: database.RoleUser,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newTestApp(cfg)

	forged, err := auth.NewTokenService("wrong-secret").Issue(&database.User{
		ID: 1, Email: "clerk@example.com", Role: database.RoleUser,
	})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"forged token", "Bearer " + forged},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
