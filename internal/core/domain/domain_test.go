package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCarFilterMatches(t *testing.T) {
	car := NewCar(1, CarInput{Size: "s", Fuel: "gasoline", Doors: 3, Transmission: "auto"})

	tests := []struct {
		name   string
		filter CarFilter
		want   bool
	}{
		{"empty filter", CarFilter{}, true},
		{"size matches", CarFilter{Size: "s"}, true},
		{"size differs", CarFilter{Size: "m"}, false},
		{"fuel matches", CarFilter{Fuel: "gasoline"}, true},
		{"doors matches", CarFilter{Doors: intPtr(3)}, true},
		{"doors differs", CarFilter{Doors: intPtr(5)}, false},
		{"all match", CarFilter{Size: "s", Fuel: "gasoline", Doors: intPtr(3), Transmission: "auto"}, true},
		{"one of several differs", CarFilter{Size: "s", Fuel: "gasoline", Transmission: "manual"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(car))
		})
	}
}

func TestCarFilterApplyKeepsOrder(t *testing.T) {
	cars := []*Car{
		NewCar(1, CarInput{Size: "s", Fuel: "electric", Doors: 3, Transmission: "auto"}),
		NewCar(2, CarInput{Size: "m", Fuel: "electric", Doors: 5, Transmission: "auto"}),
		NewCar(3, CarInput{Size: "s", Fuel: "diesel", Doors: 5, Transmission: "manual"}),
	}

	got := CarFilter{Size: "s"}.Apply(cars)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	assert.Len(t, CarFilter{}.Apply(cars), 3)
	assert.Empty(t, CarFilter{Fuel: "hydrogen"}.Apply(cars))
	assert.True(t, CarFilter{}.IsEmpty())
	assert.False(t, CarFilter{Doors: intPtr(0)}.IsEmpty())
}

func TestCarApplyKeepsIDAndTrips(t *testing.T) {
	car := NewCar(7, DefaultCarInput())
	car.AppendTrip(car.NextTripID(), TripInput{Start: 1, End: 2})

	car.Apply(CarInput{Size: "l", Fuel: "diesel", Doors: 3, Transmission: "manual"})

	assert.Equal(t, 7, car.ID)
	assert.Len(t, car.Trips, 1)
	assert.Equal(t, CarInput{Size: "l", Fuel: "diesel", Doors: 3, Transmission: "manual"}, car.Input())
}

func TestCarCloneIsDeep(t *testing.T) {
	desc := "original"
	car := NewCar(1, DefaultCarInput())
	car.AppendTrip(1, TripInput{Start: 1, End: 2, Description: &desc})

	clone := car.Clone()
	*clone.Trips[0].Description = "changed"
	clone.Trips = append(clone.Trips, Trip{ID: 2})

	assert.Equal(t, "original", *car.Trips[0].Description)
	assert.Len(t, car.Trips, 1)
}

func TestNextTripID(t *testing.T) {
	car := NewCar(1, DefaultCarInput())
	assert.Equal(t, 1, car.NextTripID())

	car.AppendTrip(1, TripInput{})
	car.AppendTrip(4, TripInput{})
	assert.Equal(t, 5, car.NextTripID())
	assert.Equal(t, 1, car.Trips[0].CarID)
}

func TestTripCheckBounds(t *testing.T) {
	assert.NoError(t, TripInput{Start: 10, End: 20}.CheckBounds())
	assert.NoError(t, TripInput{Start: 10, End: 10}.CheckBounds())
	assert.ErrorIs(t, TripInput{Start: 30, End: 5}.CheckBounds(), ErrBadTrip)
}

func TestErrors(t *testing.T) {
	err := CarNotFound(42)
	assert.True(t, errors.Is(err, ErrCarNotFound))
	assert.Equal(t, "car not found for id: 42", err.Error())

	perr := Persistence("write snapshot", errors.New("disk full"))
	assert.ErrorIs(t, perr, ErrPersistence)
	assert.Contains(t, perr.Error(), "disk full")

	verr := &ValidationError{Fields: map[string]string{"size": "is required", "doors": "must be at least 1"}}
	assert.Equal(t, "validation error: doors: must be at least 1; size: is required", verr.Error())
}
