// Package storetest holds the behaviour every ports.CarRepository backend
// must share. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

// Factory returns an empty repository. Cleanup is registered on t.
type Factory func(t *testing.T) ports.CarRepository

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// Run executes the conformance suite. Each subtest gets a fresh repository.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("List empty", func(t *testing.T) {
		repo := newRepo(t)
		cars, err := repo.ListCars(ctx, domain.CarFilter{})
		require.NoError(t, err)
		assert.Empty(t, cars)
	})

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		in := domain.CarInput{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"}

		created, err := repo.CreateCar(ctx, in)
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, in, created.Input())
		assert.NotNil(t, created.Trips)
		assert.Empty(t, created.Trips)

		got, err := repo.GetCar(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetCar(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})

	t.Run("Ids are unique", func(t *testing.T) {
		repo := newRepo(t)
		seen := map[int]bool{}
		for i := 0; i < 5; i++ {
			car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
			require.NoError(t, err)
			assert.False(t, seen[car.ID], "id %d reused", car.ID)
			seen[car.ID] = true
		}
	})

	t.Run("Ids are not reused after delete", func(t *testing.T) {
		repo := newRepo(t)
		var ids []int
		for i := 0; i < 3; i++ {
			car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
			require.NoError(t, err)
			ids = append(ids, car.ID)
		}
		require.NoError(t, repo.DeleteCar(ctx, ids[1]))

		car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)
		assert.NotContains(t, ids, car.ID)
	})

	t.Run("List filters", func(t *testing.T) {
		repo := newRepo(t)
		inputs := []domain.CarInput{
			{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"},
			{Size: "m", Fuel: "electric", Doors: 5, Transmission: "auto"},
			{Size: "s", Fuel: "electric", Doors: 5, Transmission: "manual"},
			{Size: "l", Fuel: "diesel", Doors: 5, Transmission: "manual"},
		}
		var all []*domain.Car
		for _, in := range inputs {
			car, err := repo.CreateCar(ctx, in)
			require.NoError(t, err)
			all = append(all, car)
		}

		filters := []domain.CarFilter{
			{},
			{Size: "s"},
			{Fuel: "electric"},
			{Doors: intPtr(5)},
			{Transmission: "manual"},
			{Size: "s", Fuel: "electric"},
			{Size: "s", Doors: intPtr(5), Transmission: "manual"},
			{Size: "xl"},
			{Doors: intPtr(0)},
		}
		for _, f := range filters {
			got, err := repo.ListCars(ctx, f)
			require.NoError(t, err)

			want := f.Apply(all)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.True(t, f.Matches(got[i]))
			}
		}

		after, err := repo.ListCars(ctx, domain.CarFilter{})
		require.NoError(t, err)
		assert.Equal(t, all, after)
	})

	t.Run("Update replaces descriptive fields only", func(t *testing.T) {
		repo := newRepo(t)
		car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)
		_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 1, End: 2})
		require.NoError(t, err)
		before, err := repo.GetCar(ctx, car.ID)
		require.NoError(t, err)

		in := domain.CarInput{Size: "l", Fuel: "diesel", Doors: 3, Transmission: "manual"}
		updated, err := repo.UpdateCar(ctx, car.ID, in)
		require.NoError(t, err)
		assert.Equal(t, car.ID, updated.ID)
		assert.Equal(t, in, updated.Input())
		assert.Equal(t, before.Trips, updated.Trips)

		got, err := repo.GetCar(ctx, car.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("Update missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.UpdateCar(ctx, 999, domain.DefaultCarInput())
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)
		_, err = repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 1, End: 2})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteCar(ctx, car.ID))

		_, err = repo.GetCar(ctx, car.ID)
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
		assert.ErrorIs(t, repo.DeleteCar(ctx, car.ID), domain.ErrCarNotFound)

		cars, err := repo.ListCars(ctx, domain.CarFilter{})
		require.NoError(t, err)
		assert.Empty(t, cars)
	})

	t.Run("Add trips", func(t *testing.T) {
		repo := newRepo(t)
		car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)

		first, err := repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 10, End: 20, Description: strPtr("trip A")})
		require.NoError(t, err)
		assert.Positive(t, first.ID)
		assert.Equal(t, 10, first.Start)
		assert.Equal(t, 20, first.End)
		require.NotNil(t, first.Description)
		assert.Equal(t, "trip A", *first.Description)

		second, err := repo.AddTrip(ctx, car.ID, domain.TripInput{Start: 20, End: 20})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Nil(t, second.Description)

		got, err := repo.GetCar(ctx, car.ID)
		require.NoError(t, err)
		require.Len(t, got.Trips, 2)
		assert.Equal(t, first.ID, got.Trips[0].ID)
		assert.Equal(t, second.ID, got.Trips[1].ID)
	})

	t.Run("Trips of different cars stay apart", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)
		b, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)

		_, err = repo.AddTrip(ctx, a.ID, domain.TripInput{Start: 1, End: 2})
		require.NoError(t, err)

		gotB, err := repo.GetCar(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, gotB.Trips)

		cars, err := repo.ListCars(ctx, domain.CarFilter{})
		require.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Len(t, cars[0].Trips, 1)
		assert.Empty(t, cars[1].Trips)
	})

	t.Run("Add trip to missing car", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.AddTrip(ctx, 999, domain.TripInput{Start: 1, End: 2})
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})

	t.Run("Returned cars are copies", func(t *testing.T) {
		repo := newRepo(t)
		car, err := repo.CreateCar(ctx, domain.DefaultCarInput())
		require.NoError(t, err)

		car.Size = "xl"
		car.Trips = append(car.Trips, domain.Trip{ID: 50})

		got, err := repo.GetCar(ctx, car.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSize, got.Size)
		assert.Empty(t, got.Trips)
	})
}
