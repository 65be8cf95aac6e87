package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	MongoURI           string
	MongoDatabase      string
	CORSAllowedOrigins []string
	Mail               MailConfig
}

// MailConfig holds settings for the booking confirmation mailer.
type MailConfig struct {
	Provider           string // "ses" or "noop"
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          os.Getenv("PORT"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
		Mail: MailConfig{
			Provider:           os.Getenv("MAIL_PROVIDER"),
			FromAddress:        os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("MAIL_FROM_NAME"),
			SESRegion:          os.Getenv("AWS_SES_REGION"),
			SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	// The connection string has no sensible default; refuse to start without it.
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is required")
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "eventbooking"
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "noop"
	}

	return cfg, nil
}
