package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	SessionTTL     time.Duration
	BackupDir      string
	BackupInterval time.Duration
	BackupKeep     int
}

// Load reads .env (when present) and assembles the configuration.
// DATABASE_URL wins; otherwise the URL is built from the PG* pieces.
func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	databaseURL, err := databaseURL()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		DatabaseURL:    databaseURL,
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		BackupInterval: getDuration("BACKUP_INTERVAL", 24*time.Hour),
		BackupKeep:     7,
	}
	return cfg, nil
}

func databaseURL() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	user := os.Getenv("PGUSER")
	password := os.Getenv("PGPASSWORD")
	host := os.Getenv("PGHOST")
	port := os.Getenv("PGPORT")
	name := os.Getenv("PGDATABASE")
	if user == "" || host == "" || port == "" || name == "" {
		return "", errors.New("database configuration is incomplete: set DATABASE_URL or the PGUSER/PGPASSWORD/PGHOST/PGPORT/PGDATABASE variables")
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", user, password, host, port, name), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
