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

// mutableAnimalColumns are the columns an update may overwrite; id and center_id are fixed.
var mutableAnimalColumns = []string{"name", "description", "age", "species_id", "price"}

type AnimalStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAnimalStorage(db *gorm.DB, logger *slog.Logger) *AnimalStorage {
	return &AnimalStorage{db: db, logger: logger}
}

func (s *AnimalStorage) ListAnimals(ctx context.Context) ([]domain.Record, error) {
	var animals []domain.Animal
	result := s.db.WithContext(ctx).Select("id", "name").Order("id").Find(&animals)
	if result.Error != nil {
		s.logger.Error("failed to list animals", "error", result.Error)
		return nil, fmt.Errorf("list animals: %w", result.Error)
	}
	return domain.AnimalRecords(animals, false), nil
}

func (s *AnimalStorage) GetAnimal(ctx context.Context, id int64) (domain.Record, error) {
	a, err := s.find(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	return domain.AnimalRecord(*a, true), nil
}

func (s *AnimalStorage) find(ctx context.Context, id int64) (*domain.Animal, error) {
	var a domain.Animal
	result := s.db.WithContext(ctx).First(&a, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("animal not found", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get animal", "id", id, "error", result.Error)
		return nil, fmt.Errorf("get animal %d: %w", id, result.Error)
	}
	return &a, nil
}

func (s *AnimalStorage) AddAnimal(ctx context.Context, in domain.NewAnimal, centerID int64) (domain.Record, error) {
	start := time.Now()

	a := domain.Animal{
		CenterID:    centerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.SpeciesID != nil {
		a.SpeciesID = *in.SpeciesID
	}

	if result := s.db.WithContext(ctx).Create(&a); result.Error != nil {
		s.logger.Error("failed to create animal", "center_id", centerID, "species_id", a.SpeciesID, "error", result.Error)
		return nil, fmt.Errorf("create animal: %w", dberr.Translate(result.Error))
	}

	s.logger.Info("animal created",
		"id", a.ID,
		"center_id", centerID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return domain.AnimalRecord(a, true), nil
}

// UpdateAnimal loads the entity, then writes the mutable columns of rec onto it,
// zero values included.
func (s *AnimalStorage) UpdateAnimal(ctx context.Context, rec domain.Record) (bool, error) {
	start := time.Now()

	next, err := domain.AnimalFromRecord(rec)
	if err != nil {
		return false, fmt.Errorf("update animal: %w", err)
	}

	current, err := s.find(ctx, next.ID)
	if err != nil || current == nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Model(current).Select(mutableAnimalColumns).Updates(next)
	if result.Error != nil {
		s.logger.Error("failed to update animal", "id", next.ID, "error", result.Error)
		return false, fmt.Errorf("update animal %d: %w", next.ID, dberr.Translate(result.Error))
	}

	s.logger.Info("animal updated", "id", next.ID, "rows", result.RowsAffected, "duration_ms", time.Since(start).Milliseconds())
	return result.RowsAffected > 0, nil
}

func (s *AnimalStorage) DeleteAnimal(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	current, err := s.find(ctx, id)
	if err != nil || current == nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Delete(current)
	if result.Error != nil {
		s.logger.Error("failed to delete animal", "id", id, "error", result.Error)
		return false, fmt.Errorf("delete animal %d: %w", id, result.Error)
	}

	s.logger.Info("animal deleted", "id", id, "rows", result.RowsAffected, "duration_ms", time.Since(start).Milliseconds())
	return result.RowsAffected > 0, nil
}
