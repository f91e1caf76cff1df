package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
)

const devSessionSecret = "dev-session-secret-change-me"

// Config collects everything read from the environment at startup. Nothing
// else in the program touches os.Getenv.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	SessionSecret []byte
	SessionTTL    time.Duration

	AuthRatePerMin int
	AuthRateBurst  int

	AllowedOrigins []string
}

// Load reads the configuration from the environment, falling back to local
// development defaults.
func Load() Config {
	cfg := Config{
		Port:           envOr("PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		SQLitePath:     envOr("SQLITE_PATH", "assessments.db"),
		SessionTTL:     time.Duration(envIntOr("SESSION_TTL_HOURS", 24)) * time.Hour,
		AuthRatePerMin: envIntOr("AUTH_RATE_PER_MIN", 10),
		AuthRateBurst:  envIntOr("AUTH_RATE_BURST", 5),
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = devSessionSecret
		slog.Warn("SESSION_SECRET not set, using development default")
	}
	cfg.SessionSecret = []byte(secret)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

// OpenDatabase connects to PostgreSQL when DB_HOST is set, otherwise to a
// local SQLite file, and migrates the schema.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Template{},
		&models.Question{},
		&models.Assessment{},
		&models.Answer{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}
