package client

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/GoArmGo/ShelterApp/internal/config"
	"github.com/GoArmGo/ShelterApp/internal/database/migrations"
)

// Client holds the sqlx pool used by the direct-query backend and by migrations.
type Client struct {
	DB     *sqlx.DB
	logger *slog.Logger
}

// NewClient opens the pool for cfg.DatabaseDriver (postgres or sqlite) and applies migrations.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	dsn := cfg.DatabaseURL
	if cfg.DatabaseDriver == "sqlite" {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sqlx.Connect(cfg.DatabaseDriver, dsn)
	if err != nil {
		logger.Error("failed to open database connection", "driver", cfg.DatabaseDriver, "error", err)
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	if cfg.DatabaseDriver == "sqlite" {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrations.Apply(db.DB, cfg.DatabaseDriver, dsn, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("database connection established",
		"driver", cfg.DatabaseDriver,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{DB: db, logger: logger}, nil
}

// SQLiteDSN turns on foreign key enforcement unless the DSN already sets it.
// modernc sqlite applies _pragma parameters on every new connection.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func (c *Client) Close() error {
	start := time.Now()
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
