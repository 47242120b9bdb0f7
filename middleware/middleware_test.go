package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/config"
	"app/middleware"
	"app/models"
)

func makeApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func signToken(t *testing.T, secret string, expires time.Time) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "admin@example.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", time.Now().Add(time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", time.Now().Add(time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", time.Now().Add(-time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
