package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	ServerPort      string
	BreakfastWindow string
	LunchWindow     string
	DinnerWindow    string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "hal40"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		BreakfastWindow: getEnv("BREAKFAST_WINDOW", "06:00-10:00"),
		LunchWindow:     getEnv("LUNCH_WINDOW", "12:00-15:00"),
		DinnerWindow:    getEnv("DINNER_WINDOW", "19:00-22:00"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
