// Package config centralises the environment-variable loading that the
// teacher repo repeated in every package (getEnv/getEnvAsInt in cache,
// database, and cmd/migrate) into one place, plus the zap logger shared by
// the rest of the service.
package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// Config holds the settings read once at process start.
type Config struct {
	Port int

	ProtocolFeeBps     uint64
	WinnerShareBps     uint64
	SeasonPoolShareBps uint64

	MigrationsPath string
	Environment    string
}

func Load() *Config {
	return &Config{
		Port: getEnvAsInt("PORT", 8080),

		ProtocolFeeBps:     uint64(getEnvAsInt("PROTOCOL_FEE_BPS", 200)),
		WinnerShareBps:     uint64(getEnvAsInt("WINNER_SHARE_BPS", 9000)),
		SeasonPoolShareBps: uint64(getEnvAsInt("SEASON_POOL_SHARE_BPS", 200)),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}
}

// Env and EnvInt are the package's getEnv/getEnvAsInt, exported so the rest
// of the service (internal/cache, cmd/migrate) reads its own settings
// through one implementation instead of three copies of the same ten lines.
func Env(key, defaultVal string) string {
	return getEnv(key, defaultVal)
}

func EnvInt(key string, defaultVal int) int {
	return getEnvAsInt(key, defaultVal)
}

// NewLogger builds the zap.Logger used across the service: human-readable
// development output locally, structured JSON once ENVIRONMENT=production.
func NewLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
