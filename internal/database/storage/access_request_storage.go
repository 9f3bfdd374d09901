package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/ShelterApp/internal/database/dberr"
)

// AccessRequestStorage implements ports.AccessRequestStorage with parameterized SQL.
type AccessRequestStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewAccessRequestStorage(db *sqlx.DB, logger *slog.Logger) *AccessRequestStorage {
	return &AccessRequestStorage{db: db, logger: logger, now: time.Now}
}

func (s *AccessRequestStorage) CreateAccessRequest(ctx context.Context, centerID int64) (int64, error) {
	var id int64
	q := s.db.Rebind(`INSERT INTO access_requests (center_id, timestamp) VALUES (?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &id, q, centerID, s.now().UTC()); err != nil {
		s.logger.Error("failed to insert access request", "center_id", centerID, "error", err)
		return 0, fmt.Errorf("insert access request: %w", dberr.Translate(err))
	}

	s.logger.Info("access request recorded", "id", id, "center_id", centerID)
	return id, nil
}
