package usecase

import (
	"context"
	"errors"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownLogin    = errors.New("unknown login")
	ErrInvalidPassword = errors.New("incorrect password")
	ErrLoginTaken      = errors.New("login already taken")
	ErrSpeciesTaken    = errors.New("species already exists")
	ErrUnknownSpecies  = errors.New("unknown species")
	ErrForbidden       = errors.New("animal belongs to another center")
)

// TokenIssuer hands out bearer tokens for a center.
type TokenIssuer interface {
	Issue(centerID int64) (string, error)
}

// ShelterUseCase is the calling layer between the HTTP surface and the repositories.
// Records are passed through untouched, so responses have the repository shape.
type ShelterUseCase interface {
	// Login records an access request and returns a token.
	Login(ctx context.Context, login, password string) (string, error)
	// Register creates the center, records an access request and returns the center and a token.
	// The two writes are sequential, not atomic.
	Register(ctx context.Context, in domain.NewCenter) (domain.Record, string, error)

	ListAnimals(ctx context.Context) ([]domain.Record, error)
	GetAnimal(ctx context.Context, id int64) (domain.Record, error)
	AddAnimal(ctx context.Context, in domain.NewAnimal, callerID int64) (domain.Record, error)
	// UpdateAnimal merges the patch onto the stored animal and returns the merged record.
	UpdateAnimal(ctx context.Context, id int64, patch domain.AnimalPatch, callerID int64) (domain.Record, error)
	DeleteAnimal(ctx context.Context, id int64, callerID int64) error

	ListCenters(ctx context.Context) ([]domain.Record, error)
	GetCenter(ctx context.Context, id int64) (domain.Record, []domain.Record, error)

	ListSpecies(ctx context.Context) ([]domain.Record, error)
	GetSpecies(ctx context.Context, id int64) (domain.Record, []domain.Record, error)
	AddSpecies(ctx context.Context, in domain.NewSpecies) (domain.Record, error)
}
