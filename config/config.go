package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Admin      AdminConfig
	Uploads    UploadsConfig
	Revalidate RevalidateConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// How long cached catalog pages live before expiring on their own.
	PageTTL time.Duration
}

type AdminConfig struct {
	Username string
	// Bcrypt hash of the admin password. If empty, Password is compared
	// directly (development only).
	PasswordHash  string
	Password      string
	SessionSecret string
	SessionExpiry time.Duration
}

type UploadsConfig struct {
	// Root of the public uploads tree, served at /uploads.
	Dir string
	// Subdirectory under Dir holding product images.
	ProductsDir string
	// WebP quality for converted images, 1-100.
	Quality int
}

type RevalidateConfig struct {
	// Bearer token required by POST /api/v1/revalidate. Empty disables the check.
	Token string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "techmedis"),
			Password: getEnv("DB_PASSWORD", "techmedis"),
			DBName:   getEnv("DB_NAME", "techmedis"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			PageTTL:  parseDuration(getEnv("PAGE_CACHE_TTL", "24h"), 24*time.Hour),
		},
		Admin: AdminConfig{
			Username:      getEnv("ADMIN_USER", ""),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:      getEnv("ADMIN_PASSWORD", ""),
			SessionSecret: getEnv("ADMIN_SESSION_SECRET", ""),
			SessionExpiry: parseDuration(getEnv("ADMIN_SESSION_EXPIRY", "24h"), 24*time.Hour),
		},
		Uploads: UploadsConfig{
			Dir:         getEnv("UPLOADS_DIR", "./uploads"),
			ProductsDir: getEnv("UPLOADS_PRODUCTS_DIR", "products"),
			Quality:     parseInt(getEnv("UPLOADS_WEBP_QUALITY", "85"), 85),
		},
		Revalidate: RevalidateConfig{
			Token: getEnv("REVALIDATE_TOKEN", ""),
		},
	}

	return config, nil
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	if c.Admin.Username == "" {
		return fmt.Errorf("ADMIN_USER is not configured")
	}
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("neither ADMIN_PASSWORD_HASH nor ADMIN_PASSWORD is configured")
	}
	if c.Admin.SessionSecret == "" {
		return fmt.Errorf("ADMIN_SESSION_SECRET is not configured")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid number %s, using default %d", s, fallback)
		return fallback
	}
	return n
}
