package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

type AppConfig struct {
	BaseURL   string
	StaticDir string
}

type RateLimitConfig struct {
	Requests   int
	WindowSecs int
}

type LoggingConfig struct {
	Level string
}

// Load reads an optional .env file, then layers environment variables over
// defaults into one typed struct, read once at startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file present; environment variables and defaults still apply.
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("ROCKET_ADDRESS", "0.0.0.0"),
			Port: getEnv("ROCKET_PORT", "8000"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "qr_service.db"),
		},
		App: AppConfig{
			BaseURL:   getEnv("BASE_URL", "http://localhost:8000"),
			StaticDir: getEnv("STATIC_DIR", ""),
		},
		Rate: RateLimitConfig{
			Requests:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
			WindowSecs: getEnvInt("RATE_LIMIT_WINDOW_SECS", 60),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.Rate.WindowSecs) * time.Second
}
