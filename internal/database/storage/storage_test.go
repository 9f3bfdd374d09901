package storage

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/database/dbtest"
	"github.com/GoArmGo/ShelterApp/internal/domain"
)

func discardLogger() *slog.Logger {
	return dbtest.DiscardLogger()
}

func newSQLiteStorage(t *testing.T) (ports.Storage, *sqlx.DB) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	return New(db, discardLogger()), db
}

func ptr[T any](v T) *T { return &v }

func seedCenterAndSpecies(t *testing.T, s ports.Storage) (centerID, speciesID int64) {
	t.Helper()
	ctx := context.Background()

	center, err := s.Centers.AddCenter(ctx, domain.NewCenter{Login: "ann", Password: "a", Address: "lp"})
	require.NoError(t, err)
	species, err := s.Species.AddSpecies(ctx, domain.NewSpecies{
		Name:        "dog",
		Description: ptr("barks"),
		Price:       ptr(10.5),
	})
	require.NoError(t, err)

	return center["id"].(int64), species["id"].(int64)
}

func TestCenterRegistrationAndPassword(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()

	rec, err := s.Centers.AddCenter(ctx, domain.NewCenter{Login: "ann", Password: "a", Address: "lp"})
	require.NoError(t, err)
	assert.Equal(t, domain.Record{"id": int64(1), "login": "ann", "address": "lp"}, rec)

	ok, err := s.Centers.CheckPassword(ctx, "a", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Centers.CheckPassword(ctx, "x", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Centers.CheckPassword(ctx, "a", 42)
	require.NoError(t, err)
	assert.False(t, ok)

	byLogin, err := s.Centers.GetCenterByLogin(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, rec, byLogin)

	list, err := s.Centers.ListCenters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{{"id": int64(1), "login": "ann"}}, list)
}

func TestAddCenterDuplicateLogin(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()

	_, err := s.Centers.AddCenter(ctx, domain.NewCenter{Login: "ann", Password: "a", Address: "lp"})
	require.NoError(t, err)

	_, err = s.Centers.AddCenter(ctx, domain.NewCenter{Login: "ann", Password: "b", Address: "elsewhere"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	list, err := s.Centers.ListCenters(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddAnimalUsesCallerAndReturnsID(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, speciesID := seedCenterAndSpecies(t, s)

	rec, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "toto",
		Description: ptr("good boy"),
		Age:         ptr(3),
		SpeciesID:   ptr(speciesID),
		Price:       ptr(100.0),
	}, centerID)
	require.NoError(t, err)

	id, ok := rec["id"].(int64)
	require.True(t, ok)
	assert.Positive(t, id)
	assert.Equal(t, centerID, rec["center_id"])
	assert.Equal(t, speciesID, rec["species_id"])

	got, err := s.Animals.GetAnimal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	second, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "rex",
		Description: ptr(""),
		Age:         ptr(1),
		SpeciesID:   ptr(speciesID),
		Price:       ptr(0.0),
	}, centerID)
	require.NoError(t, err)
	assert.NotEqual(t, id, second["id"])
}

func TestAddAnimalUnknownSpecies(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, _ := seedCenterAndSpecies(t, s)

	_, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "ghost",
		Description: ptr("-"),
		Age:         ptr(1),
		SpeciesID:   ptr(int64(999)),
		Price:       ptr(1.0),
	}, centerID)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestUpdateAnimal(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, speciesID := seedCenterAndSpecies(t, s)

	rec, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "toto",
		Description: ptr("good boy"),
		Age:         ptr(3),
		SpeciesID:   ptr(speciesID),
		Price:       ptr(100.0),
	}, centerID)
	require.NoError(t, err)

	merged := domain.AnimalPatch{Name: ptr("tata"), Age: ptr(4)}.Apply(rec)
	updated, err := s.Animals.UpdateAnimal(ctx, merged)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := s.Animals.GetAnimal(ctx, rec["id"].(int64))
	require.NoError(t, err)
	assert.Equal(t, "tata", got["name"])
	assert.Equal(t, 4, got["age"])
	assert.Equal(t, "good boy", got["description"])

	merged["id"] = int64(999)
	updated, err = s.Animals.UpdateAnimal(ctx, merged)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteAnimalIsIdempotent(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, speciesID := seedCenterAndSpecies(t, s)

	rec, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "toto",
		Description: ptr("good boy"),
		Age:         ptr(3),
		SpeciesID:   ptr(speciesID),
		Price:       ptr(100.0),
	}, centerID)
	require.NoError(t, err)
	id := rec["id"].(int64)

	deleted, err := s.Animals.DeleteAnimal(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Animals.DeleteAnimal(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := s.Animals.GetAnimal(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSpeciesAggregationIncludesZeroCounts(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, dogID := seedCenterAndSpecies(t, s)

	_, err := s.Species.AddSpecies(ctx, domain.NewSpecies{Name: "cat", Description: ptr("meows"), Price: ptr(5.0)})
	require.NoError(t, err)

	for _, name := range []string{"toto", "rex"} {
		_, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
			Name:        name,
			Description: ptr("-"),
			Age:         ptr(2),
			SpeciesID:   ptr(dogID),
			Price:       ptr(1.0),
		}, centerID)
		require.NoError(t, err)
	}

	list, err := s.Species.ListSpecies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{
		{"species_name": "dog", "count_of_animals": int64(2)},
		{"species_name": "cat", "count_of_animals": int64(0)},
	}, list)
}

func TestSpeciesLookups(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()

	cat, err := s.Species.AddSpecies(ctx, domain.NewSpecies{Name: "cat", Description: ptr("meows"), Price: ptr(5.0)})
	require.NoError(t, err)

	byName, err := s.Species.GetSpeciesByName(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, cat["id"], byName["id"])

	byID, err := s.Species.GetSpecies(ctx, cat["id"].(int64))
	require.NoError(t, err)
	assert.Equal(t, domain.Record{"id": cat["id"], "name": "cat", "description": "meows", "price": 5.0}, byID)

	sp, animals, err := s.Species.GetSpeciesWithAnimals(ctx, cat["id"].(int64))
	require.NoError(t, err)
	assert.Equal(t, byID, sp)
	assert.Empty(t, animals)

	_, err = s.Species.AddSpecies(ctx, domain.NewSpecies{Name: "cat", Description: ptr("again"), Price: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	missing, err := s.Species.GetSpeciesByName(ctx, "dragon")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCenterWithAnimals(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, speciesID := seedCenterAndSpecies(t, s)

	rec, err := s.Animals.AddAnimal(ctx, domain.NewAnimal{
		Name:        "toto",
		Description: nil,
		Age:         ptr(3),
		SpeciesID:   ptr(speciesID),
		Price:       nil,
	}, centerID)
	require.NoError(t, err)
	assert.Nil(t, rec["description"])
	assert.Nil(t, rec["price"])

	center, animals, err := s.Centers.GetCenterWithAnimals(ctx, centerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Record{"id": centerID, "login": "ann", "address": "lp"}, center)
	assert.Equal(t, []domain.Record{{"id": rec["id"], "name": "toto"}}, animals)

	center, animals, err = s.Centers.GetCenterWithAnimals(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, center)
	assert.Nil(t, animals)
}

func TestGetMissingReturnsNil(t *testing.T) {
	s, _ := newSQLiteStorage(t)
	ctx := context.Background()

	c, err := s.Centers.GetCenter(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, c)

	a, err := s.Animals.GetAnimal(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, a)

	sp, err := s.Species.GetSpecies(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, sp)
}

func TestCreateAccessRequest(t *testing.T) {
	s, db := newSQLiteStorage(t)
	ctx := context.Background()
	centerID, _ := seedCenterAndSpecies(t, s)

	first, err := s.AccessRequests.CreateAccessRequest(ctx, centerID)
	require.NoError(t, err)
	second, err := s.AccessRequests.CreateAccessRequest(ctx, centerID)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM access_requests WHERE center_id = ?`, centerID))
	assert.Equal(t, 2, n)

	_, err = s.AccessRequests.CreateAccessRequest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}
