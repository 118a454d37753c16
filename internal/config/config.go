package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Dispatch DispatchConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	DispatchLogPath    string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type DispatchConfig struct {
	// TimeoutSeconds bounds every outbound webhook call; the call is raced
	// against this deadline and loses terminally.
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			DispatchLogPath:    getEnv("DISPATCH_LOG_PATH", "logs/dispatch.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Dispatch: DispatchConfig{
			TimeoutSeconds: getEnvAsInt("DISPATCH_TIMEOUT_SECONDS", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
