package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/joho/godotenv"
)

// devSessionSecret is only used when SESSION_SECRET is not set.
const devSessionSecret = "dev_fallback_secret_change_me"

// DBConfig holds the MySQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// SessionConfig controls the admin session store.
type SessionConfig struct {
	Secret  string
	Backend string // "cookie" or "memory"
}

// Config is the full runtime configuration of the service.
type Config struct {
	Port           string
	GinMode        string
	DB             DBConfig
	UploadDir      string
	MaxUploadBytes int64
	Session        SessionConfig

	// Optional bootstrap admin account, seeded at startup when both are set.
	AdminUsername string
	AdminPassword string
}

// Load reads the .env file (if any) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	cfg := &Config{
		Port:    GetEnv("APP_PORT", "8080"),
		GinMode: GetEnv("GIN_MODE", ""),
		DB: DBConfig{
			Host:     GetEnv("MYSQL_HOST", "127.0.0.1"),
			Port:     GetEnv("MYSQL_PORT", "3306"),
			User:     GetEnv("MYSQL_USER", "root"),
			Password: GetEnv("MYSQL_PASSWORD", ""),
			Name:     GetEnv("MYSQL_DB", "catalog"),
		},
		UploadDir:      GetEnv("UPLOAD_DIR", "static/uploads"),
		MaxUploadBytes: int64(GetEnvAsInt("MAX_UPLOAD_MB", 10)) << 20,
		Session: SessionConfig{
			Secret:  GetEnv("SESSION_SECRET", ""),
			Backend: strings.ToLower(GetEnv("SESSION_BACKEND", "cookie")),
		},
		AdminUsername: GetEnv("ADMIN_USERNAME", ""),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.Session.Secret == "" {
		logger.Warn("SESSION_SECRET is empty, using the development fallback secret.")
		cfg.Session.Secret = devSessionSecret
	}
	if cfg.Session.Backend != "cookie" && cfg.Session.Backend != "memory" {
		logger.Warn("Unknown SESSION_BACKEND %q, falling back to cookie", cfg.Session.Backend)
		cfg.Session.Backend = "cookie"
	}
	return cfg
}

// HasBootstrapAdmin reports whether an admin account should be seeded.
func (c *Config) HasBootstrapAdmin() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt is GetEnv for integer values. Unparsable values yield fallback.
func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
