package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/pkg/logger"
)

func main() {
	// .env is optional; production uses the real environment
	envFileErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if envFileErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	log.Info().Str("environment", env).Msg("Starting API")

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
