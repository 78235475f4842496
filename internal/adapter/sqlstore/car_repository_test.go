package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/carsharing_microservice/internal/adapter/storetest"
	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

func newSQLiteRepository(t *testing.T, path string) *CarRepository {
	t.Helper()
	repo, err := OpenSQLite(path, "migrations")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.CarRepository {
		return newSQLiteRepository(t, filepath.Join(t.TempDir(), "cars.db"))
	})
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) ports.CarRepository {
		repo, err := OpenPostgres(context.Background(), dsn, "migrations")
		require.NoError(t, err)
		_, err = repo.db.Exec(`TRUNCATE trips, cars`)
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cars.db")

	repo, err := OpenSQLite(path, "migrations")
	require.NoError(t, err)
	car, err := repo.CreateCar(ctx, domain.CarInput{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"})
	require.NoError(t, err)
	desc := "trip A"
	_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 10, End: 20, Description: &desc})
	require.NoError(t, err)
	before, err := repo.ListCars(ctx, domain.CarFilter{})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := newSQLiteRepository(t, path)
	after, err := reopened.ListCars(ctx, domain.CarFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteCascadesTrips(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "cars.db"))

	car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)
	_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 1, End: 2})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteCar(ctx, car.ID))

	var count int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&count))
	assert.Zero(t, count)
}

func TestAddTripRejectsBadBounds(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "cars.db"))

	car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)

	_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 30, End: 5})
	assert.ErrorIs(t, err, domain.ErrBadTrip)

	got, err := repo.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Trips)
}

func TestConstraintViolationIsPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "cars.db"))

	car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
	require.NoError(t, err)

	_, err = repo.db.ExecContext(ctx, `INSERT INTO trips (car_id, trip_start, trip_end) VALUES (?, 9, 1)`, car.ID)
	require.Error(t, err)
	assert.ErrorIs(t, wrapError("insert trip", err), domain.ErrPersistence)
}

func TestRebind(t *testing.T) {
	pg := NewCarRepository(nil, DialectPostgres)
	assert.Equal(t, "SELECT * FROM cars WHERE size = $1 AND doors = $2", pg.rebind("SELECT * FROM cars WHERE size = ? AND doors = ?"))

	lite := NewCarRepository(nil, DialectSQLite)
	assert.Equal(t, "SELECT * FROM cars WHERE size = ?", lite.rebind("SELECT * FROM cars WHERE size = ?"))
}

func TestFilterClause(t *testing.T) {
	where, args := filterClause(domain.CarFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	doors := 3
	where, args = filterClause(domain.CarFilter{Size: "s", Doors: &doors, Transmission: "auto"})
	assert.Equal(t, " WHERE size = ? AND doors = ? AND transmission = ?", where)
	assert.Equal(t, []interface{}{"s", 3, "auto"}, args)
}
