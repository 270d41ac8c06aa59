package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string

	// Outbound mail account. Both are required before any report can be
	// delivered; main treats their absence as a fatal configuration error.
	EmailAddress  string
	EmailPassword string
	SMTPHost      string
	SMTPPort      string

	// Cron spec for the daily scheduled-report sweep.
	ReportCron string

	// IANA timezone the report windows are anchored to.
	ReportTimezone string
}

// LoadConfig reads configuration from the environment, loading a local
// .env file first when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB", "shelterpartner"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		EmailAddress:   os.Getenv("EMAILADDRESS"),
		EmailPassword:  os.Getenv("EMAILPASSWORD"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		ReportCron:     getEnv("REPORT_CRON", "0 8 * * *"),
		ReportTimezone: getEnv("REPORT_TIMEZONE", "America/Chicago"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
