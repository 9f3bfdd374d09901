package di

import (
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShelterApp/internal/config"
	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/database/client"
	"github.com/GoArmGo/ShelterApp/internal/database/postgres"
	"github.com/GoArmGo/ShelterApp/internal/database/storage"
)

// openStorage connects the backend named by DAO_BACKEND. The choice is made once,
// here; nothing downstream knows which backend it got.
func openStorage(cfg *config.Config, logger *slog.Logger) (ports.Storage, func() error, error) {
	switch cfg.DAOBackend {
	case config.BackendSQL:
		dbClient, err := client.NewClient(cfg, logger)
		if err != nil {
			return ports.Storage{}, nil, err
		}
		return storage.New(dbClient.DB, logger), dbClient.Close, nil

	case config.BackendORM:
		if cfg.DatabaseDriver != "postgres" {
			return ports.Storage{}, nil, fmt.Errorf("backend %q supports only postgres, got %q", cfg.DAOBackend, cfg.DatabaseDriver)
		}
		gormClient, err := client.NewGormClient(cfg, logger)
		if err != nil {
			return ports.Storage{}, nil, err
		}
		return postgres.New(gormClient.DB, logger), gormClient.Close, nil

	default:
		return ports.Storage{}, nil, fmt.Errorf("unknown storage backend %q", cfg.DAOBackend)
	}
}
