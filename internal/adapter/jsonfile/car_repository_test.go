package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/carsharing_microservice/internal/adapter/jsonfile"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/storetest"
	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

func TestMemoryRepository(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.CarRepository {
		return jsonfile.NewMemoryRepository()
	})
}

func TestFileRepository(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.CarRepository {
		repo, err := jsonfile.NewCarRepository(filepath.Join(t.TempDir(), "cars.json"))
		require.NoError(t, err)
		return repo
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cars.json")

	repo, err := jsonfile.NewCarRepository(path)
	require.NoError(t, err)

	desc := "trip A"
	car, err := repo.CreateCar(ctx, domain.CarInput{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"})
	require.NoError(t, err)
	_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 10, End: 20, Description: &desc})
	require.NoError(t, err)
	_, err = repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)

	before, err := repo.ListCars(ctx, domain.CarFilter{})
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(path)
	require.NoError(t, err)

	reloaded, err := jsonfile.NewCarRepository(path)
	require.NoError(t, err)
	after, err := reloaded.ListCars(ctx, domain.CarFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// an update that changes nothing must rewrite the identical document
	_, err = reloaded.UpdateCar(ctx, car.ID, car.Input())
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestSnapshotLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cars.json")

	repo, err := jsonfile.NewCarRepository(path)
	require.NoError(t, err)
	_, err = repo.CreateCar(ctx, domain.CarInput{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"size":"s","fuel":"gasoline","doors":3,"transmission":"auto","trips":[]}]`, string(data))
}

func TestLoadExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cars.json")
	doc := `[
  {"id": 1, "size": "s", "fuel": "gasoline", "doors": 3, "transmission": "auto", "trips": [{"id": 1, "start": 0, "end": 5, "description": null}]},
  {"id": 4, "size": "m", "fuel": "electric", "doors": 5, "transmission": "auto"}
]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	repo, err := jsonfile.NewCarRepository(path)
	require.NoError(t, err)

	car, err := repo.GetCar(ctx, 4)
	require.NoError(t, err)
	assert.NotNil(t, car.Trips)

	first, err := repo.GetCar(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first.Trips, 1)
	assert.Equal(t, 1, first.Trips[0].CarID)

	created, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
}

func TestCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := jsonfile.NewCarRepository(path)
	assert.Error(t, err)
}

func TestFailedWriteLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cars.json")

	repo, err := jsonfile.NewCarRepository(path)
	require.NoError(t, err)
	car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)

	// a non-empty directory at the snapshot path makes the rename fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	_, err = repo.CreateCar(ctx, domain.DefaultCarInput())
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = repo.UpdateCar(ctx, car.ID, domain.CarInput{Size: "l", Fuel: "diesel", Doors: 3, Transmission: "manual"})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 1, End: 2})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	assert.ErrorIs(t, repo.DeleteCar(ctx, car.ID), domain.ErrPersistence)

	cars, err := repo.ListCars(ctx, domain.CarFilter{})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, car, cars[0])

	// a failed create does not consume an id
	require.NoError(t, os.RemoveAll(path))
	next, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}
