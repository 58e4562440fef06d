package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the admin console.
type Config struct {
	// DatabasePath is the SQLite file backing the store.
	DatabasePath string
	// AutoSeed seeds empty collections on startup.
	AutoSeed bool
	// FeedSize is the number of entries in the recent-activity feed.
	FeedSize int
}

// Load reads configuration from an optional .env file and the
// environment. A missing .env file is fine; system env vars still apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := loadEnvString(&cfg.DatabasePath, "LIBRARYDESK_DB", "librarydesk.db"); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&cfg.AutoSeed, "LIBRARYDESK_AUTOSEED", true); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.FeedSize, "LIBRARYDESK_FEED_SIZE", 10); err != nil {
		return nil, err
	}

	if cfg.FeedSize < 1 {
		return nil, fmt.Errorf("LIBRARYDESK_FEED_SIZE must be at least 1")
	}
	return cfg, nil
}

func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}
