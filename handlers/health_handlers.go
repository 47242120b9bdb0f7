package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"app/config"
)

// HandleHealthCheck reports service health and non-secret configuration.
// GET /api/v1/health
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"config": fiber.Map{
			"gemini_api_key_set": config.AppConfig.GeminiAPIKey != "",
			"sales_api_url":      config.AppConfig.SalesAPIURL,
			"database_configured": config.AppConfig.DatabaseURL != "",
		},
	})
}
