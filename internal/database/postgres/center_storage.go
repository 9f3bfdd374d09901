package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/GoArmGo/ShelterApp/internal/database/dberr"
	"github.com/GoArmGo/ShelterApp/internal/domain"
)

type CenterStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCenterStorage(db *gorm.DB, logger *slog.Logger) *CenterStorage {
	return &CenterStorage{db: db, logger: logger}
}

func (s *CenterStorage) ListCenters(ctx context.Context) ([]domain.Record, error) {
	var centers []domain.Center
	result := s.db.WithContext(ctx).Select("id", "login").Order("id").Find(&centers)
	if result.Error != nil {
		s.logger.Error("failed to list centers", "error", result.Error)
		return nil, fmt.Errorf("list centers: %w", result.Error)
	}

	records := make([]domain.Record, 0, len(centers))
	for _, c := range centers {
		records = append(records, domain.CenterRecord(c, false))
	}
	return records, nil
}

func (s *CenterStorage) GetCenter(ctx context.Context, id int64) (domain.Record, error) {
	c, err := s.first(s.db.WithContext(ctx).Where("id = ?", id), id)
	if err != nil || c == nil {
		return nil, err
	}
	return domain.CenterRecord(*c, true), nil
}

func (s *CenterStorage) GetCenterWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	c, err := s.first(s.db.WithContext(ctx).Where("id = ?", id), id)
	if err != nil || c == nil {
		return nil, nil, err
	}

	var animals []domain.Animal
	result := s.db.WithContext(ctx).Select("id", "name").Where("center_id = ?", id).Order("id").Find(&animals)
	if result.Error != nil {
		s.logger.Error("failed to list center animals", "center_id", id, "error", result.Error)
		return nil, nil, fmt.Errorf("list animals of center %d: %w", id, result.Error)
	}

	return domain.CenterRecord(*c, true), domain.AnimalRecords(animals, false), nil
}

func (s *CenterStorage) GetCenterByLogin(ctx context.Context, login string) (domain.Record, error) {
	c, err := s.first(s.db.WithContext(ctx).Where("login = ?", login), login)
	if err != nil || c == nil {
		return nil, err
	}
	return domain.CenterRecord(*c, true), nil
}

func (s *CenterStorage) first(q *gorm.DB, key any) (*domain.Center, error) {
	var c domain.Center
	result := q.Select("id", "login", "address").First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("center not found", "key", key)
			return nil, nil
		}
		s.logger.Error("failed to get center", "key", key, "error", result.Error)
		return nil, fmt.Errorf("get center %v: %w", key, result.Error)
	}
	return &c, nil
}

func (s *CenterStorage) CheckPassword(ctx context.Context, password string, centerID int64) (bool, error) {
	var c domain.Center
	result := s.db.WithContext(ctx).Select("password_hash").Where("id = ?", centerID).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("failed to read password hash", "center_id", centerID, "error", result.Error)
		return false, fmt.Errorf("read password hash of center %d: %w", centerID, result.Error)
	}
	return domain.PasswordMatches(c.PasswordHash, password), nil
}

func (s *CenterStorage) AddCenter(ctx context.Context, in domain.NewCenter) (domain.Record, error) {
	start := time.Now()

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	c := domain.Center{Login: in.Login, PasswordHash: hash, Address: in.Address}
	if result := s.db.WithContext(ctx).Create(&c); result.Error != nil {
		err := dberr.Translate(result.Error)
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Warn("center login already taken", "login", in.Login)
		} else {
			s.logger.Error("failed to create center", "login", in.Login, "error", err)
		}
		return nil, fmt.Errorf("create center: %w", err)
	}

	s.logger.Info("center created", "id", c.ID, "duration_ms", time.Since(start).Milliseconds())
	return domain.CenterRecord(c, true), nil
}
