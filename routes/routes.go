package routes

import (
	"github.com/gofiber/fiber/v2"

	"app/handlers"
	"app/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, chatHandler *handlers.ChatHandler, recordHandler *handlers.RecordHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HandleHealthCheck)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- Chat Routes ---
	chats := api.Group("/chats", middleware.Authenticate)
	chats.Post("/", chatHandler.HandleCreateChat)
	chats.Get("/", chatHandler.HandleListChats)
	chats.Delete("/", chatHandler.HandleClearChats)
	chats.Get("/:chatId", chatHandler.HandleGetChat)
	chats.Post("/:chatId/messages", chatHandler.HandleSendMessage)
	chats.Delete("/:chatId", chatHandler.HandleDeleteChat)

	// --- Data Routes ---
	api.Get("/records", middleware.Authenticate, recordHandler.HandleListRecords)
	api.Post("/forecast", middleware.Authenticate, recordHandler.HandleForecast)
}
