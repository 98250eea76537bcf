package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultJWTSecret = "dev-secret-key-change-in-production"

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	UploadDir   string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		UploadDir:   getEnv("UPLOAD_DIR", "./static/uploads"),
	}
}

// JWTSecret returns the token signing key, falling back to the development
// default when JWT_SECRET is unset.
func JWTSecret() []byte {
	return []byte(getEnv("JWT_SECRET", defaultJWTSecret))
}

// OpenDatabase connects to postgres using DATABASE_URL when set, otherwise
// the discrete DB_* variables.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "grocery"),
			getEnv("DB_PORT", "5432"),
		)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
