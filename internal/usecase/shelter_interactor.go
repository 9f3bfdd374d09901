package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/domain"
)

// shelterUseCase implements ShelterUseCase
type shelterUseCase struct {
	store     ports.Storage
	tokens    TokenIssuer
	ownerOnly bool
	logger    *slog.Logger
}

// NewShelterUseCase builds the calling layer over one storage backend.
// With ownerOnly set, only the owning center may update or delete an animal.
func NewShelterUseCase(store ports.Storage, tokens TokenIssuer, ownerOnly bool, logger *slog.Logger) ShelterUseCase {
	return &shelterUseCase{
		store:     store,
		tokens:    tokens,
		ownerOnly: ownerOnly,
		logger:    logger,
	}
}

func (uc *shelterUseCase) Login(ctx context.Context, login, password string) (string, error) {
	center, err := uc.store.Centers.GetCenterByLogin(ctx, login)
	if err != nil {
		return "", fmt.Errorf("usecase: find center by login: %w", err)
	}
	if center == nil {
		return "", ErrUnknownLogin
	}

	id := center["id"].(int64)
	ok, err := uc.store.Centers.CheckPassword(ctx, password, id)
	if err != nil {
		return "", fmt.Errorf("usecase: check password: %w", err)
	}
	if !ok {
		uc.logger.Warn("login rejected", "center_id", id)
		return "", ErrInvalidPassword
	}

	return uc.grantAccess(ctx, id)
}

func (uc *shelterUseCase) Register(ctx context.Context, in domain.NewCenter) (domain.Record, string, error) {
	center, err := uc.store.Centers.AddCenter(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, "", ErrLoginTaken
		}
		return nil, "", fmt.Errorf("usecase: add center: %w", err)
	}

	token, err := uc.grantAccess(ctx, center["id"].(int64))
	if err != nil {
		return nil, "", err
	}
	return center, token, nil
}

func (uc *shelterUseCase) grantAccess(ctx context.Context, centerID int64) (string, error) {
	if _, err := uc.store.AccessRequests.CreateAccessRequest(ctx, centerID); err != nil {
		return "", fmt.Errorf("usecase: record access request: %w", err)
	}

	token, err := uc.tokens.Issue(centerID)
	if err != nil {
		return "", fmt.Errorf("usecase: issue token: %w", err)
	}

	uc.logger.Info("access granted", "center_id", centerID)
	return token, nil
}

func (uc *shelterUseCase) ListAnimals(ctx context.Context) ([]domain.Record, error) {
	return uc.store.Animals.ListAnimals(ctx)
}

func (uc *shelterUseCase) GetAnimal(ctx context.Context, id int64) (domain.Record, error) {
	animal, err := uc.store.Animals.GetAnimal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get animal: %w", err)
	}
	if animal == nil {
		return nil, ErrNotFound
	}
	return animal, nil
}

func (uc *shelterUseCase) AddAnimal(ctx context.Context, in domain.NewAnimal, callerID int64) (domain.Record, error) {
	if in.SpeciesID == nil {
		return nil, ErrUnknownSpecies
	}
	if err := uc.requireSpecies(ctx, *in.SpeciesID); err != nil {
		return nil, err
	}

	animal, err := uc.store.Animals.AddAnimal(ctx, in, callerID)
	if err != nil {
		// the species may have vanished since the check
		if errors.Is(err, domain.ErrInvalidReference) {
			return nil, ErrUnknownSpecies
		}
		return nil, fmt.Errorf("usecase: add animal: %w", err)
	}
	return animal, nil
}

func (uc *shelterUseCase) UpdateAnimal(ctx context.Context, id int64, patch domain.AnimalPatch, callerID int64) (domain.Record, error) {
	current, err := uc.mutableAnimal(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if patch.SpeciesID != nil {
		if err := uc.requireSpecies(ctx, *patch.SpeciesID); err != nil {
			return nil, err
		}
	}

	merged := patch.Apply(current)
	updated, err := uc.store.Animals.UpdateAnimal(ctx, merged)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return nil, ErrUnknownSpecies
		}
		return nil, fmt.Errorf("usecase: update animal: %w", err)
	}
	if !updated {
		return nil, ErrNotFound
	}
	return merged, nil
}

func (uc *shelterUseCase) DeleteAnimal(ctx context.Context, id int64, callerID int64) error {
	if uc.ownerOnly {
		if _, err := uc.mutableAnimal(ctx, id, callerID); err != nil {
			return err
		}
	}

	deleted, err := uc.store.Animals.DeleteAnimal(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: delete animal: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// mutableAnimal loads the animal and applies the mutation policy.
func (uc *shelterUseCase) mutableAnimal(ctx context.Context, id, callerID int64) (domain.Record, error) {
	animal, err := uc.GetAnimal(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.ownerOnly && animal["center_id"] != callerID {
		uc.logger.Warn("mutation by non-owner rejected", "animal_id", id, "center_id", callerID)
		return nil, ErrForbidden
	}
	return animal, nil
}

func (uc *shelterUseCase) requireSpecies(ctx context.Context, speciesID int64) error {
	species, err := uc.store.Species.GetSpecies(ctx, speciesID)
	if err != nil {
		return fmt.Errorf("usecase: get species: %w", err)
	}
	if species == nil {
		return ErrUnknownSpecies
	}
	return nil
}

func (uc *shelterUseCase) ListCenters(ctx context.Context) ([]domain.Record, error) {
	return uc.store.Centers.ListCenters(ctx)
}

func (uc *shelterUseCase) GetCenter(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	center, animals, err := uc.store.Centers.GetCenterWithAnimals(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: get center: %w", err)
	}
	if center == nil {
		return nil, nil, ErrNotFound
	}
	return center, animals, nil
}

func (uc *shelterUseCase) ListSpecies(ctx context.Context) ([]domain.Record, error) {
	return uc.store.Species.ListSpecies(ctx)
}

func (uc *shelterUseCase) GetSpecies(ctx context.Context, id int64) (domain.Record, []domain.Record, error) {
	species, animals, err := uc.store.Species.GetSpeciesWithAnimals(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: get species: %w", err)
	}
	if species == nil {
		return nil, nil, ErrNotFound
	}
	return species, animals, nil
}

func (uc *shelterUseCase) AddSpecies(ctx context.Context, in domain.NewSpecies) (domain.Record, error) {
	species, err := uc.store.Species.AddSpecies(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrSpeciesTaken
		}
		return nil, fmt.Errorf("usecase: add species: %w", err)
	}
	return species, nil
}
