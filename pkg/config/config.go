package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	JWTSecret         string
	JWTExpiry         time.Duration
	TelegramBotToken  string
	TelegramWebAppURL string
	PointsPerPurchase int
	PointsPerDevice   int
	LogLevel          string
	LogPretty         bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtExpiry := 720 * time.Hour // 30 days, a session lives as long as the mini app install
	if exp := os.Getenv("JWT_EXPIRES_IN"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			jwtExpiry = parsed
		}
	}

	return &Config{
		Port:              getEnv("PORT", "3000"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "loyalty"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:         jwtExpiry,
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramWebAppURL: getEnv("TELEGRAM_WEBAPP_URL", "http://localhost:3000"),
		PointsPerPurchase: getEnvInt("POINTS_PER_PURCHASE", 10),
		PointsPerDevice:   getEnvInt("POINTS_PER_DEVICE", 50),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         getEnv("LOG_PRETTY", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
