package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	BaseURL          string
	PostgresConnStr  string
	SessionSecret    string
	ResetTokenSecret string
	ResetTokenTTL    time.Duration
	SMTPAddr         string
	SMTPFrom         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		PostgresConnStr:  os.Getenv("POSTGRES_CONN_STR"),
		SessionSecret:    getEnv("SESSION_SECRET", "supersecretsessionkey"),
		ResetTokenSecret: getEnv("RESET_TOKEN_SECRET", "supersecretresetkey"),
		ResetTokenTTL:    getDuration("RESET_TOKEN_TTL", 10*time.Minute),
		SMTPAddr:         getEnv("SMTP_ADDR", ""),
		SMTPFrom:         getEnv("SMTP_FROM", "no-reply@gatherly.local"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s (%q), using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
