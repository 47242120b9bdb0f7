package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds application configuration, populated once at startup.
type Config struct {
	GeminiAPIKey      string
	SalesAPIURL       string
	DatabaseURL       string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	Port              string
	CORSOrigins       string
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

const defaultSalesAPIURL = "http://54.234.201.60:5000/chat/getFormData"

// Load populates AppConfig from the environment. A missing Gemini API key is
// a configuration error: without it no response can ever be generated.
func Load() error {
	AppConfig = Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		SalesAPIURL:       os.Getenv("SALES_API_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Port:              os.Getenv("PORT"),
		CORSOrigins:       os.Getenv("CORS_ORIGINS"),
	}

	if AppConfig.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	if AppConfig.SalesAPIURL == "" {
		AppConfig.SalesAPIURL = defaultSalesAPIURL
	}
	if AppConfig.Port == "" {
		AppConfig.Port = "8000"
	}
	if AppConfig.CORSOrigins == "" {
		AppConfig.CORSOrigins = strings.Join([]string{
			"http://localhost:5173", "http://127.0.0.1:5173",
			"http://localhost:8080", "http://127.0.0.1:8080",
		}, ",")
	}

	return nil
}
