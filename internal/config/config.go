package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string         // ENV
	HTTPAddr      string         // HTTP_ADDR
	DBDSN         string         // DB_DSN, пусто - хранилище в памяти
	Location      *time.Location // TIMEZONE
	MockLatency   time.Duration  // MOCK_LATENCY
	CurrentUserID string         // CURRENT_USER_ID
	SeedFile      string         // SEED_FILE, пусто - встроенные данные
	AutoApprove   bool           // AUTO_APPROVE, начальное значение настройки
	MigrationsDir string         // MIGRATIONS_DIR, пусто - встроенные миграции
	SweepInterval time.Duration  // PENDING_SWEEP_INTERVAL, 0 - фоновая задача выключена
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:   getenv("ENV", "development"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DBDSN:         os.Getenv("DB_DSN"),
		CurrentUserID: getenv("CURRENT_USER_ID", "user1"),
		SeedFile:      os.Getenv("SEED_FILE"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	loc, err := time.LoadLocation(getenv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("parse TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if v := os.Getenv("MOCK_LATENCY"); v != "" {
		cfg.MockLatency, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse MOCK_LATENCY: %w", err)
		}
		if cfg.MockLatency < 0 {
			return nil, fmt.Errorf("MOCK_LATENCY must not be negative")
		}
	}

	cfg.SweepInterval, err = time.ParseDuration(getenv("PENDING_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse PENDING_SWEEP_INTERVAL: %w", err)
	}
	if cfg.SweepInterval < 0 {
		return nil, fmt.Errorf("PENDING_SWEEP_INTERVAL must not be negative")
	}

	if v := os.Getenv("AUTO_APPROVE"); v != "" {
		cfg.AutoApprove, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse AUTO_APPROVE: %w", err)
		}
	}

	return cfg, nil
}

// UsesPostgres сообщает, настроено ли подключение к базе
func (c *Config) UsesPostgres() bool {
	return c.DBDSN != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
