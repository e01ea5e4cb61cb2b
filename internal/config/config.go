// internal/config/config.go
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"minivenmo/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config
	// DeclinedCards lists card numbers the simulated card network declines,
	// so charge failures can be exercised without a real processor.
	DeclinedCards []string
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables, falling back to defaults suitable for a local run.
func LoadConfig() (*AppConfig, error) {
	// A missing .env file is fine; env vars and defaults still apply.
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	archiveDSN := os.Getenv("ARCHIVE_DSN")
	if archiveDSN == "" {
		archiveDSN = ":memory:" // the archive is in-memory by design
	}

	var declined []string
	if v := os.Getenv("DECLINED_CARDS"); v != "" {
		for _, card := range strings.Split(v, ",") {
			if card = strings.TrimSpace(card); card != "" {
				declined = append(declined, card)
			}
		}
	}

	return &AppConfig{
		ServerPort:    serverPort,
		DB:            db.Config{DSN: archiveDSN},
		DeclinedCards: declined,
	}, nil
}
