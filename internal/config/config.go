// internal/config/config.go
//
// Environment-driven configuration for the hangman server.
// A .env file is loaded first when present; unset variables take defaults.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Store   StoreConfig
	Session SessionConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	Host           string
	Env            string // "development" or "production"
	ClientOrigin   string // CORS origin for a separately served client; empty disables CORS
	RequestTimeout time.Duration
}

// GameConfig holds game-related configuration.
type GameConfig struct {
	WordsFile     string // empty uses the embedded word list
	RevealDelay   time.Duration
	ShakeDuration time.Duration
}

// StoreConfig holds preference store configuration.
type StoreConfig struct {
	DBPath string // "memory" keeps preferences in process memory
}

// SessionConfig holds player cookie configuration.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads a .env file if present, then builds the configuration from
// environment variables with defaults.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5175"),
			Host:           getEnv("HOST", ""),
			Env:            getEnv("ENV", "development"),
			ClientOrigin:   getEnv("CLIENT_ORIGIN", ""),
			RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Game: GameConfig{
			WordsFile:     getEnv("WORDS_FILE", ""),
			RevealDelay:   time.Duration(getEnvInt("REVEAL_DELAY_MS", 500)) * time.Millisecond,
			ShakeDuration: time.Duration(getEnvInt("SHAKE_MS", 500)) * time.Millisecond,
		},
		Store: StoreConfig{
			DBPath: getEnv("DB_PATH", "./data/hangman.db"),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev_secret_change_me"),
			CookieName: getEnv("COOKIE_NAME", "hangman_player"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_DAYS", 180)) * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt returns k parsed as an integer, or def if unset or malformed.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
