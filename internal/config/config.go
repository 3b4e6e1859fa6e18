package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	MongoURI              string
	DatabaseName          string
	JWTSecret             string
	Origin                string
	TokenTTL              time.Duration
	GoogleAudience        string
	RatingRefreshInterval time.Duration
	Timeout               time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:                  getEnv("PORT", "3001"),
		MongoURI:              getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:          getEnv("DATABASE_NAME", "edusyncDB"),
		JWTSecret:             getEnv("JWT_SECRET", "dev-secret"),
		Origin:                getEnv("ORIGIN", "http://localhost:5173"),
		TokenTTL:              getEnvDuration("TOKEN_TTL", 24*time.Hour),
		GoogleAudience:        getEnv("GOOGLE_AUDIENCE", ""),
		RatingRefreshInterval: getEnvDuration("RATING_REFRESH_INTERVAL", 0),
		Timeout:               10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
