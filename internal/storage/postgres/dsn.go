package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/projects-miniapp/config"
)

// DSN renders cfg as a keyword/value connection string understood by both
// lib/pq and pgx. An empty password is left out so the next keyword is not
// read as its value.
func DSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s", cfg.Host, cfg.Port, cfg.User)
	if cfg.Password != "" {
		dsn += " password=" + cfg.Password
	}
	return dsn + fmt.Sprintf(" dbname=%s sslmode=%s", cfg.Name, sslMode)
}
