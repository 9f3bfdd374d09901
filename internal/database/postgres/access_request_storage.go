package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/GoArmGo/ShelterApp/internal/database/dberr"
	"github.com/GoArmGo/ShelterApp/internal/domain"
)

type AccessRequestStorage struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewAccessRequestStorage(db *gorm.DB, logger *slog.Logger) *AccessRequestStorage {
	return &AccessRequestStorage{db: db, logger: logger, now: time.Now}
}

func (s *AccessRequestStorage) CreateAccessRequest(ctx context.Context, centerID int64) (int64, error) {
	req := domain.AccessRequest{CenterID: centerID, Timestamp: s.now().UTC()}
	if result := s.db.WithContext(ctx).Create(&req); result.Error != nil {
		s.logger.Error("failed to create access request", "center_id", centerID, "error", result.Error)
		return 0, fmt.Errorf("create access request: %w", dberr.Translate(result.Error))
	}

	s.logger.Info("access request recorded", "id", req.ID, "center_id", centerID)
	return req.ID, nil
}
