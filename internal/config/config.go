package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// JWT signing secrets. Access and refresh tokens use independent
	// secrets; password reset tokens get their own scope as well.
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTResetSecret   string

	// SMTP settings for the email dispatcher.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// AppBaseURL is the public base URL used in password reset links.
	AppBaseURL string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		// clientFoundRows makes UPDATE report matched rows rather than
		// changed rows; the owner-scoped updates rely on that to tell
		// "not yours" apart from "nothing changed".
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/expense_tracker?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTAccessSecret:  getEnv("JWT_SECRET", "change-me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-too"),
		JWTResetSecret:   getEnv("JWT_RESET_SECRET", "change-me-as-well"),
		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:         getEnv("SMTP_FROM", "no-reply@expensetracker.local"),
		AppBaseURL:       getEnv("APP_BASE_URL", "http://localhost:8080"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
