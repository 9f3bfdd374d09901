package ports

import (
	"context"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

// Repository contracts shared by the direct-query and the mapped-entity backends.
// A missing row is reported as a nil Record and a nil error, never as an error.

// CenterStorage defines access to shelter accounts.
type CenterStorage interface {
	ListCenters(ctx context.Context) ([]domain.Record, error)
	GetCenter(ctx context.Context, id int64) (domain.Record, error)
	// GetCenterWithAnimals returns the long center record and the short records of its animals.
	GetCenterWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error)
	GetCenterByLogin(ctx context.Context, login string) (domain.Record, error)
	// CheckPassword reports whether password matches the stored hash. Unknown centers never match.
	CheckPassword(ctx context.Context, password string, centerID int64) (bool, error)
	// AddCenter hashes the password and returns the long record.
	// A taken login yields domain.ErrAlreadyExists.
	AddCenter(ctx context.Context, in domain.NewCenter) (domain.Record, error)
}

// AnimalStorage defines access to animals.
type AnimalStorage interface {
	ListAnimals(ctx context.Context) ([]domain.Record, error)
	GetAnimal(ctx context.Context, id int64) (domain.Record, error)
	// AddAnimal returns the long record including the store-assigned id.
	// A missing center or species yields domain.ErrInvalidReference.
	AddAnimal(ctx context.Context, in domain.NewAnimal, centerID int64) (domain.Record, error)
	// UpdateAnimal persists name, description, age, species_id and price of a long record.
	// It reports false when no row has the record's id.
	UpdateAnimal(ctx context.Context, rec domain.Record) (bool, error)
	// DeleteAnimal reports false when nothing was deleted.
	DeleteAnimal(ctx context.Context, id int64) (bool, error)
}

// SpeciesStorage defines access to species.
type SpeciesStorage interface {
	// ListSpecies returns {species_name, count_of_animals} for every species, zero counts included.
	ListSpecies(ctx context.Context) ([]domain.Record, error)
	GetSpecies(ctx context.Context, id int64) (domain.Record, error)
	GetSpeciesWithAnimals(ctx context.Context, id int64) (domain.Record, []domain.Record, error)
	GetSpeciesByName(ctx context.Context, name string) (domain.Record, error)
	// AddSpecies returns the long record. A taken name yields domain.ErrAlreadyExists.
	AddSpecies(ctx context.Context, in domain.NewSpecies) (domain.Record, error)
}

// AccessRequestStorage is the write-only login/registration ledger.
type AccessRequestStorage interface {
	CreateAccessRequest(ctx context.Context, centerID int64) (int64, error)
}

// Storage bundles the repositories of one backend family.
type Storage struct {
	Centers        CenterStorage
	Animals        AnimalStorage
	Species        SpeciesStorage
	AccessRequests AccessRequestStorage
}
