package gormstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type SQLiteConfig struct {
	BusyTimeoutMs int
	WAL           bool
	ForeignKeys   bool
}

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Config struct {
	DSN string
	// SQLite only supports one writer at a time, so the pool defaults to a
	// single connection to avoid SQLITE_BUSY under concurrent webhooks.
	Pool   PoolConfig
	SQLite SQLiteConfig
	// SweepInterval controls how often expired rows are purged. Zero
	// disables the background sweeper (expiry is still enforced on read).
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		DSN: "",
		Pool: PoolConfig{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 0,
		},
		SQLite: SQLiteConfig{
			BusyTimeoutMs: 5000,
			WAL:           true,
			ForeignKeys:   true,
		},
		SweepInterval: 5 * time.Minute,
	}
}

// ResolveDSN picks the database path when none is configured.
//
// Precedence:
//  1. explicit dsn
//  2. existing ./whatsapp_bot.sqlite
//  3. create + use $HOME/.whatsapp-bot/whatsapp_bot.sqlite
func ResolveDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn != "" {
		return dsn, nil
	}

	localDB := filepath.Clean("./whatsapp_bot.sqlite")
	if _, err := os.Stat(localDB); err == nil {
		return localDB, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	homeDir := filepath.Join(home, ".whatsapp-bot")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "whatsapp_bot.sqlite"), nil
}

// sqliteDSN appends the pragma query parameters understood by
// mattn/go-sqlite3 to the database path.
func sqliteDSN(path string, cfg SQLiteConfig) string {
	params := url.Values{}
	if cfg.BusyTimeoutMs > 0 {
		params.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeoutMs))
	}
	if cfg.WAL {
		params.Set("_journal_mode", "WAL")
	}
	if cfg.ForeignKeys {
		params.Set("_foreign_keys", "on")
	}
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
