package env

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Загрузка переменных окружения из файла .env
func LoadEnvVariables() {
	err := godotenv.Load()
	if err != nil {
		log.Print("no .env file found")
	}
}

// Настройки приложения из переменных окружения
type Config struct {
	Token           string
	APIKey          string
	APIBaseURL      string
	Provider        string
	Lang            string
	PollingInterval time.Duration
	StaleResponses  string
	DBDSN           string
	LogLevel        string
	LogOutput       string
}

const (
	DefaultPollingInterval = 60 * time.Second
	// База в памяти: страницы не переживают перезапуск
	DefaultDBDSN = "file::memory:?cache=shared"
)

func LoadConfig() (Config, error) {
	cfg := Config{
		Token:          os.Getenv("TOKEN"),
		APIKey:         os.Getenv("API_KEY"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		Provider:       os.Getenv("WEATHER_PROVIDER"),
		Lang:           getenv("LANG_CODE", "en"),
		StaleResponses: getenv("STALE_RESPONSES", "discard"),
		DBDSN:          getenv("DB_DSN", DefaultDBDSN),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogOutput:      os.Getenv("LOG_OUTPUT"),
	}

	cfg.PollingInterval = DefaultPollingInterval
	if v := os.Getenv("POLLING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("POLLING_INTERVAL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("POLLING_INTERVAL must be positive, got %s", v)
		}
		cfg.PollingInterval = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
