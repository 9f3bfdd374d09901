// Package storage is the direct-query backend: hand-written parameterized SQL over sqlx.
// Statements are written with ? placeholders and rebound to the driver's style, so the
// same code runs on postgres and sqlite.
package storage

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
)

var (
	_ ports.CenterStorage        = (*CenterStorage)(nil)
	_ ports.AnimalStorage        = (*AnimalStorage)(nil)
	_ ports.SpeciesStorage       = (*SpeciesStorage)(nil)
	_ ports.AccessRequestStorage = (*AccessRequestStorage)(nil)
)

// New wires the four repositories over one pool.
func New(db *sqlx.DB, logger *slog.Logger) ports.Storage {
	logger = logger.With("backend", "sql")
	return ports.Storage{
		Centers:        NewCenterStorage(db, logger),
		Animals:        NewAnimalStorage(db, logger),
		Species:        NewSpeciesStorage(db, logger),
		AccessRequests: NewAccessRequestStorage(db, logger),
	}
}
