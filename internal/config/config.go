package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Config struct {
	DatabaseURL         string
	MigrationsPath      string
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeTimeout       time.Duration
	AdminAccessCode     string
	AdminEmail          string
	JWTSecret           string
	AccessTokenTTL      time.Duration
	AppEnv              string
	Port                string
	FrontendOrigin      string
	FreeShipping        bool
	SMTP                SMTPConfig
}

// Development reports whether detailed processor errors may be included in
// error responses.
func (c Config) Development() bool {
	return c.AppEnv == "development"
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return Config{
		DatabaseURL:         mustEnv("DATABASE_URL"),
		MigrationsPath:      getEnvOrDefault("MIGRATIONS_PATH", "./internal/database/migrations"),
		StripeSecretKey:     mustEnv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: mustEnv("STRIPE_WEBHOOK_SECRET"),
		StripeTimeout:       getDurationEnv("STRIPE_TIMEOUT_SECONDS", 30, time.Second),
		AdminAccessCode:     getEnvOrDefault("ADMIN_ACCESS_CODE", ""),
		AdminEmail:          getEnvOrDefault("ADMIN_EMAIL", ""),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:      getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		AppEnv:              getEnvOrDefault("APP_ENV", "production"),
		Port:                getEnvOrDefault("PORT", "8080"),
		FrontendOrigin:      getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:3000"),
		FreeShipping:        getEnvOrDefault("FREE_SHIPPING", "") == "true",
		SMTP: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_HOST", ""),
			Port:     getEnvOrDefault("SMTP_PORT", "587"),
			Username: getEnvOrDefault("SMTP_USERNAME", ""),
			Password: getEnvOrDefault("SMTP_PASSWORD", ""),
			From:     getEnvOrDefault("SMTP_FROM", ""),
		},
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
