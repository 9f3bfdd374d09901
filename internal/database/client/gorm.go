package client

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/ShelterApp/internal/config"
	"github.com/GoArmGo/ShelterApp/internal/database/migrations"
)

// GormClient holds the gorm handle used by the mapped-entity backend.
type GormClient struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// GormConfig is shared by the production client and tests so both see the same SQL.
func GormConfig(logger *slog.Logger) *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

// NewGormClient opens a pgx-backed gorm connection and applies migrations. Postgres only.
func NewGormClient(cfg *config.Config, logger *slog.Logger) (*GormClient, error) {
	start := time.Now()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), GormConfig(logger))
	if err != nil {
		logger.Error("failed to open gorm connection", "error", err)
		return nil, fmt.Errorf("open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := migrations.Apply(sqlDB, "postgres", cfg.DatabaseURL, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("gorm connection established", "duration_ms", time.Since(start).Milliseconds())
	return &GormClient{DB: db, logger: logger}, nil
}

func (c *GormClient) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		c.logger.Error("failed to close gorm connection", "error", err)
		return err
	}
	c.logger.Info("gorm connection closed")
	return nil
}
