package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/ShelterApp/internal/database/dberr"
	"github.com/GoArmGo/ShelterApp/internal/domain"
)

// CenterStorage implements ports.CenterStorage with parameterized SQL.
type CenterStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCenterStorage(db *sqlx.DB, logger *slog.Logger) *CenterStorage {
	return &CenterStorage{db: db, logger: logger}
}

// ListCenters returns the short record of every center.
func (s *CenterStorage) ListCenters(ctx context.Context) ([]domain.Record, error) {
	start := time.Now()

	var centers []domain.Center
	if err := s.db.SelectContext(ctx, &centers, `SELECT id, login FROM centers ORDER BY id`); err != nil {
		s.logger.Error("failed to list centers", "error", err)
		return nil, fmt.Errorf("list centers: %w", err)
	}

	records := make([]domain.Record, 0, len(centers))
	for _, c := range centers {
		records = append(records, domain.CenterRecord(c, false))
	}

	s.logger.Debug("listed centers", "count", len(records), "duration_ms", time.Since(start).Milliseconds())
	return records, nil
}

func (s *CenterStorage) GetCenter(ctx context.Context, id int64) (domain.Record, error) {
	c, err := s.getCenter(ctx, `SELECT id, login, address FROM centers WHERE id = ?`, id)
	if err != nil || c == nil {
		return nil, err
	}
	return domain.CenterRecord(*c, true), nil
}

// GetCenterWithAnimals returns the long center record and the short records of its animals.
func (s *CenterStorage) GetCenterWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	c, err := s.getCenter(ctx, `SELECT id, login, address FROM centers WHERE id = ?`, id)
	if err != nil || c == nil {
		return nil, nil, err
	}

	var animals []domain.Animal
	q := s.db.Rebind(`SELECT id, name FROM animals WHERE center_id = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &animals, q, id); err != nil {
		s.logger.Error("failed to list center animals", "center_id", id, "error", err)
		return nil, nil, fmt.Errorf("list animals of center %d: %w", id, err)
	}

	return domain.CenterRecord(*c, true), domain.AnimalRecords(animals, false), nil
}

func (s *CenterStorage) GetCenterByLogin(ctx context.Context, login string) (domain.Record, error) {
	c, err := s.getCenter(ctx, `SELECT id, login, address FROM centers WHERE login = ?`, login)
	if err != nil || c == nil {
		return nil, err
	}
	return domain.CenterRecord(*c, true), nil
}

func (s *CenterStorage) getCenter(ctx context.Context, query string, arg any) (*domain.Center, error) {
	start := time.Now()

	var c domain.Center
	err := s.db.GetContext(ctx, &c, s.db.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("center not found", "key", arg)
			return nil, nil
		}
		s.logger.Error("failed to get center", "key", arg, "error", err)
		return nil, fmt.Errorf("get center %v: %w", arg, err)
	}

	s.logger.Debug("center retrieved", "id", c.ID, "duration_ms", time.Since(start).Milliseconds())
	return &c, nil
}

// CheckPassword compares password with the stored bcrypt hash; the hash never leaves this method.
func (s *CenterStorage) CheckPassword(ctx context.Context, password string, centerID int64) (bool, error) {
	var hash string
	err := s.db.GetContext(ctx, &hash, s.db.Rebind(`SELECT password_hash FROM centers WHERE id = ?`), centerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("failed to read password hash", "center_id", centerID, "error", err)
		return false, fmt.Errorf("read password hash of center %d: %w", centerID, err)
	}
	return domain.PasswordMatches(hash, password), nil
}

// AddCenter relies on the unique constraint on login instead of a pre-check.
func (s *CenterStorage) AddCenter(ctx context.Context, in domain.NewCenter) (domain.Record, error) {
	start := time.Now()

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	c := domain.Center{Login: in.Login, PasswordHash: hash, Address: in.Address}
	q := s.db.Rebind(`INSERT INTO centers (login, password_hash, address) VALUES (?, ?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &c.ID, q, c.Login, c.PasswordHash, c.Address); err != nil {
		err = dberr.Translate(err)
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Warn("center login already taken", "login", in.Login)
		} else {
			s.logger.Error("failed to insert center", "login", in.Login, "error", err)
		}
		return nil, fmt.Errorf("insert center: %w", err)
	}

	s.logger.Info("center created",
		"id", c.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return domain.CenterRecord(c, true), nil
}
