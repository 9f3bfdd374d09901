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

// AnimalStorage implements ports.AnimalStorage with parameterized SQL.
type AnimalStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewAnimalStorage(db *sqlx.DB, logger *slog.Logger) *AnimalStorage {
	return &AnimalStorage{db: db, logger: logger}
}

func (s *AnimalStorage) ListAnimals(ctx context.Context) ([]domain.Record, error) {
	start := time.Now()

	var animals []domain.Animal
	if err := s.db.SelectContext(ctx, &animals, `SELECT id, name FROM animals ORDER BY id`); err != nil {
		s.logger.Error("failed to list animals", "error", err)
		return nil, fmt.Errorf("list animals: %w", err)
	}

	s.logger.Debug("listed animals", "count", len(animals), "duration_ms", time.Since(start).Milliseconds())
	return domain.AnimalRecords(animals, false), nil
}

func (s *AnimalStorage) GetAnimal(ctx context.Context, id int64) (domain.Record, error) {
	start := time.Now()

	var a domain.Animal
	q := s.db.Rebind(`SELECT id, center_id, name, description, age, species_id, price FROM animals WHERE id = ?`)
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("animal not found", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get animal", "id", id, "error", err)
		return nil, fmt.Errorf("get animal %d: %w", id, err)
	}

	s.logger.Debug("animal retrieved", "id", id, "duration_ms", time.Since(start).Milliseconds())
	return domain.AnimalRecord(a, true), nil
}

// AddAnimal takes the generated id from RETURNING, so concurrent inserts cannot be confused.
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

	q := s.db.Rebind(`
	INSERT INTO animals (center_id, name, description, age, species_id, price)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id
	`)
	if err := s.db.GetContext(ctx, &a.ID, q, a.CenterID, a.Name, a.Description, a.Age, a.SpeciesID, a.Price); err != nil {
		s.logger.Error("failed to insert animal", "center_id", centerID, "species_id", a.SpeciesID, "error", err)
		return nil, fmt.Errorf("insert animal: %w", dberr.Translate(err))
	}

	s.logger.Info("animal created",
		"id", a.ID,
		"center_id", centerID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return domain.AnimalRecord(a, true), nil
}

// UpdateAnimal overwrites the mutable columns with the values of rec.
func (s *AnimalStorage) UpdateAnimal(ctx context.Context, rec domain.Record) (bool, error) {
	start := time.Now()

	a, err := domain.AnimalFromRecord(rec)
	if err != nil {
		return false, fmt.Errorf("update animal: %w", err)
	}

	q := s.db.Rebind(`
	UPDATE animals
	SET name = ?, description = ?, age = ?, species_id = ?, price = ?
	WHERE id = ?
	`)
	res, err := s.db.ExecContext(ctx, q, a.Name, a.Description, a.Age, a.SpeciesID, a.Price, a.ID)
	if err != nil {
		s.logger.Error("failed to update animal", "id", a.ID, "error", err)
		return false, fmt.Errorf("update animal %d: %w", a.ID, dberr.Translate(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update animal %d: rows affected: %w", a.ID, err)
	}

	s.logger.Info("animal updated", "id", a.ID, "rows", n, "duration_ms", time.Since(start).Milliseconds())
	return n > 0, nil
}

// DeleteAnimal is idempotent: deleting a missing animal reports false without error.
func (s *AnimalStorage) DeleteAnimal(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM animals WHERE id = ?`), id)
	if err != nil {
		s.logger.Error("failed to delete animal", "id", id, "error", err)
		return false, fmt.Errorf("delete animal %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete animal %d: rows affected: %w", id, err)
	}

	s.logger.Info("animal deleted", "id", id, "rows", n, "duration_ms", time.Since(start).Milliseconds())
	return n > 0, nil
}
