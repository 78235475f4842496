package ports

import (
	"context"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

// CarRepository is a persistence backend for cars and their trips.
// Missing cars are reported with domain.CarNotFound, backend failures
// are wrapped in domain.ErrPersistence.
type CarRepository interface {
	ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error)
	GetCar(ctx context.Context, id int) (*domain.Car, error)
	CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int) error
	AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error)
	Close() error
}

type CarService interface {
	ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error)
	GetCar(ctx context.Context, id int) (*domain.Car, error)
	CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int) error
	AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error)
}
