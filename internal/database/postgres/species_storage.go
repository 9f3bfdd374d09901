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

type SpeciesStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSpeciesStorage(db *gorm.DB, logger *slog.Logger) *SpeciesStorage {
	return &SpeciesStorage{db: db, logger: logger}
}

// ListSpecies builds the same grouped outer join as the direct-query backend.
func (s *SpeciesStorage) ListSpecies(ctx context.Context) ([]domain.Record, error) {
	var counts []domain.SpeciesCount
	result := s.db.WithContext(ctx).
		Model(&domain.Species{}).
		Select("species.name AS species_name, COUNT(animals.id) AS count_of_animals").
		Joins("LEFT OUTER JOIN animals ON animals.species_id = species.id").
		Group("species.id, species.name").
		Order("species.id").
		Scan(&counts)
	if result.Error != nil {
		s.logger.Error("failed to count animals per species", "error", result.Error)
		return nil, fmt.Errorf("list species: %w", result.Error)
	}

	records := make([]domain.Record, 0, len(counts))
	for _, c := range counts {
		records = append(records, domain.SpeciesCountRecord(c))
	}
	return records, nil
}

func (s *SpeciesStorage) GetSpecies(ctx context.Context, id int64) (domain.Record, error) {
	sp, err := s.first(s.db.WithContext(ctx).Where("id = ?", id), id)
	if err != nil || sp == nil {
		return nil, err
	}
	return domain.SpeciesRecord(*sp, true), nil
}

func (s *SpeciesStorage) GetSpeciesWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	sp, err := s.first(s.db.WithContext(ctx).Where("id = ?", id), id)
	if err != nil || sp == nil {
		return nil, nil, err
	}

	var animals []domain.Animal
	result := s.db.WithContext(ctx).Select("id", "name").Where("species_id = ?", id).Order("id").Find(&animals)
	if result.Error != nil {
		s.logger.Error("failed to list species animals", "species_id", id, "error", result.Error)
		return nil, nil, fmt.Errorf("list animals of species %d: %w", id, result.Error)
	}

	return domain.SpeciesRecord(*sp, true), domain.AnimalRecords(animals, false), nil
}

func (s *SpeciesStorage) GetSpeciesByName(ctx context.Context, name string) (domain.Record, error) {
	sp, err := s.first(s.db.WithContext(ctx).Where("name = ?", name), name)
	if err != nil || sp == nil {
		return nil, err
	}
	return domain.SpeciesRecord(*sp, true), nil
}

func (s *SpeciesStorage) first(q *gorm.DB, key any) (*domain.Species, error) {
	var sp domain.Species
	result := q.First(&sp)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("species not found", "key", key)
			return nil, nil
		}
		s.logger.Error("failed to get species", "key", key, "error", result.Error)
		return nil, fmt.Errorf("get species %v: %w", key, result.Error)
	}
	return &sp, nil
}

func (s *SpeciesStorage) AddSpecies(ctx context.Context, in domain.NewSpecies) (domain.Record, error) {
	start := time.Now()

	sp := domain.Species{Name: in.Name, Description: in.Description, Price: in.Price}
	if result := s.db.WithContext(ctx).Create(&sp); result.Error != nil {
		err := dberr.Translate(result.Error)
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Warn("species name already taken", "name", in.Name)
		} else {
			s.logger.Error("failed to create species", "name", in.Name, "error", err)
		}
		return nil, fmt.Errorf("create species: %w", err)
	}

	s.logger.Info("species created", "id", sp.ID, "duration_ms", time.Since(start).Milliseconds())
	return domain.SpeciesRecord(sp, true), nil
}
