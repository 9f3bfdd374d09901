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

// SpeciesStorage implements ports.SpeciesStorage with parameterized SQL.
type SpeciesStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSpeciesStorage(db *sqlx.DB, logger *slog.Logger) *SpeciesStorage {
	return &SpeciesStorage{db: db, logger: logger}
}

// ListSpecies counts animals per species in one grouped query; the outer join keeps
// species without animals at zero.
func (s *SpeciesStorage) ListSpecies(ctx context.Context) ([]domain.Record, error) {
	start := time.Now()

	q := `
	SELECT species.name AS species_name, COUNT(animals.id) AS count_of_animals
	FROM species
	LEFT OUTER JOIN animals ON animals.species_id = species.id
	GROUP BY species.id, species.name
	ORDER BY species.id
	`

	var counts []domain.SpeciesCount
	if err := s.db.SelectContext(ctx, &counts, q); err != nil {
		s.logger.Error("failed to count animals per species", "error", err)
		return nil, fmt.Errorf("list species: %w", err)
	}

	records := make([]domain.Record, 0, len(counts))
	for _, c := range counts {
		records = append(records, domain.SpeciesCountRecord(c))
	}

	s.logger.Debug("listed species", "count", len(records), "duration_ms", time.Since(start).Milliseconds())
	return records, nil
}

func (s *SpeciesStorage) GetSpecies(ctx context.Context, id int64) (domain.Record, error) {
	sp, err := s.getSpecies(ctx, `SELECT id, name, description, price FROM species WHERE id = ?`, id)
	if err != nil || sp == nil {
		return nil, err
	}
	return domain.SpeciesRecord(*sp, true), nil
}

// GetSpeciesWithAnimals returns the long species record and the short records of its animals.
func (s *SpeciesStorage) GetSpeciesWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	sp, err := s.getSpecies(ctx, `SELECT id, name, description, price FROM species WHERE id = ?`, id)
	if err != nil || sp == nil {
		return nil, nil, err
	}

	var animals []domain.Animal
	q := s.db.Rebind(`SELECT id, name FROM animals WHERE species_id = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &animals, q, id); err != nil {
		s.logger.Error("failed to list species animals", "species_id", id, "error", err)
		return nil, nil, fmt.Errorf("list animals of species %d: %w", id, err)
	}

	return domain.SpeciesRecord(*sp, true), domain.AnimalRecords(animals, false), nil
}

func (s *SpeciesStorage) GetSpeciesByName(ctx context.Context, name string) (domain.Record, error) {
	sp, err := s.getSpecies(ctx, `SELECT id, name, description, price FROM species WHERE name = ?`, name)
	if err != nil || sp == nil {
		return nil, err
	}
	return domain.SpeciesRecord(*sp, true), nil
}

func (s *SpeciesStorage) getSpecies(ctx context.Context, query string, arg any) (*domain.Species, error) {
	var sp domain.Species
	if err := s.db.GetContext(ctx, &sp, s.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("species not found", "key", arg)
			return nil, nil
		}
		s.logger.Error("failed to get species", "key", arg, "error", err)
		return nil, fmt.Errorf("get species %v: %w", arg, err)
	}
	return &sp, nil
}

// AddSpecies relies on the unique constraint on name instead of a pre-check.
func (s *SpeciesStorage) AddSpecies(ctx context.Context, in domain.NewSpecies) (domain.Record, error) {
	start := time.Now()

	sp := domain.Species{Name: in.Name, Description: in.Description, Price: in.Price}
	q := s.db.Rebind(`INSERT INTO species (name, description, price) VALUES (?, ?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &sp.ID, q, sp.Name, sp.Description, sp.Price); err != nil {
		err = dberr.Translate(err)
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Warn("species name already taken", "name", in.Name)
		} else {
			s.logger.Error("failed to insert species", "name", in.Name, "error", err)
		}
		return nil, fmt.Errorf("insert species: %w", err)
	}

	s.logger.Info("species created", "id", sp.ID, "duration_ms", time.Since(start).Milliseconds())
	return domain.SpeciesRecord(sp, true), nil
}
