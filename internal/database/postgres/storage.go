// Package postgres is the mapped-entity backend: the same repository contracts as the
// direct-query backend, expressed through gorm models over pgx.
package postgres

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
)

var (
	_ ports.CenterStorage        = (*CenterStorage)(nil)
	_ ports.AnimalStorage        = (*AnimalStorage)(nil)
	_ ports.SpeciesStorage       = (*SpeciesStorage)(nil)
	_ ports.AccessRequestStorage = (*AccessRequestStorage)(nil)
)

// New wires the four repositories over one gorm handle.
func New(db *gorm.DB, logger *slog.Logger) ports.Storage {
	logger = logger.With("backend", "orm")
	return ports.Storage{
		Centers:        NewCenterStorage(db, logger),
		Animals:        NewAnimalStorage(db, logger),
		Species:        NewSpeciesStorage(db, logger),
		AccessRequests: NewAccessRequestStorage(db, logger),
	}
}
