package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"app/chat"
	"app/config"
	"app/database"
	"app/handlers"
	"app/routes"
	"app/salesdata"
	"app/session"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	// Pick the record source: the live API by default, Postgres when a
	// database is configured.
	var store salesdata.Store = salesdata.NewAPIStore(config.AppConfig.SalesAPIURL)
	if config.AppConfig.DatabaseURL != "" {
		if err := database.Connect(config.AppConfig.DatabaseURL); err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer database.Close()
		store = salesdata.NewPostgresStore(database.GetDB())
	}

	responder := chat.NewGeminiResponder(config.AppConfig.GeminiAPIKey)
	svc := chat.NewService(store, responder)
	sessions := session.NewMemoryStore()

	chatHandler := handlers.NewChatHandler(svc, sessions)
	recordHandler := handlers.NewRecordHandler(store)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(app, chatHandler, recordHandler)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
