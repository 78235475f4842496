package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

type CarService struct {
	carRepo  ports.CarRepository
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewCarService(
	carRepo ports.CarRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *CarService {
	return &CarService{
		carRepo:  carRepo,
		logger:   logger,
		validate: validate,
	}
}

func (s *CarService) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	cars, err := s.carRepo.ListCars(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list cars", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	fields := map[string]interface{}{
		"cars_count":   len(cars),
		"size":         filter.Size,
		"fuel":         filter.Fuel,
		"transmission": filter.Transmission,
	}
	if filter.Doors != nil {
		fields["doors"] = *filter.Doors
	}
	s.logger.Debug("Listed cars", fields)

	return cars, nil
}

func (s *CarService) GetCar(ctx context.Context, id int) (*domain.Car, error) {
	car, err := s.carRepo.GetCar(ctx, id)
	if err != nil {
		s.logLookupFailure("Failed to get car", id, err)
		return nil, err
	}
	return car, nil
}

func (s *CarService) CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	if err := ValidateCarInput(s.validate, input); err != nil {
		s.logger.Warn("Car validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	car, err := s.carRepo.CreateCar(ctx, input)
	if err != nil {
		s.logger.Error("Failed to create car", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Car created successfully", map[string]interface{}{
		"car_id": car.ID,
	})

	return car, nil
}

func (s *CarService) UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error) {
	if err := ValidateCarInput(s.validate, input); err != nil {
		s.logger.Warn("Car validation failed", map[string]interface{}{
			"error":  err.Error(),
			"car_id": id,
		})
		return nil, err
	}

	car, err := s.carRepo.UpdateCar(ctx, id, input)
	if err != nil {
		s.logLookupFailure("Failed to update car", id, err)
		return nil, err
	}

	s.logger.Info("Car updated successfully", map[string]interface{}{
		"car_id": id,
	})

	return car, nil
}

func (s *CarService) DeleteCar(ctx context.Context, id int) error {
	if err := s.carRepo.DeleteCar(ctx, id); err != nil {
		s.logLookupFailure("Failed to delete car", id, err)
		return err
	}

	s.logger.Info("Car deleted successfully", map[string]interface{}{
		"car_id": id,
	})

	return nil
}

// AddTrip appends a trip to an existing car. A missing car is reported
// before the trip bounds are checked.
func (s *CarService) AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error) {
	if err := ValidateTripInput(s.validate, input); err != nil {
		s.logger.Warn("Trip validation failed", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		return nil, err
	}

	if _, err := s.carRepo.GetCar(ctx, carID); err != nil {
		s.logLookupFailure("Failed to get car for trip", carID, err)
		return nil, err
	}

	if err := input.CheckBounds(); err != nil {
		s.logger.Warn("Rejected trip", map[string]interface{}{
			"car_id": carID,
			"start":  input.Start,
			"end":    input.End,
		})
		return nil, err
	}

	trip, err := s.carRepo.AddTrip(ctx, carID, input)
	if err != nil {
		s.logLookupFailure("Failed to add trip", carID, err)
		return nil, err
	}

	s.logger.Info("Trip added successfully", map[string]interface{}{
		"car_id":  carID,
		"trip_id": trip.ID,
	})

	return trip, nil
}

func (s *CarService) logLookupFailure(msg string, id int, err error) {
	fields := map[string]interface{}{
		"error":  err.Error(),
		"car_id": id,
	}
	if errors.Is(err, domain.ErrCarNotFound) {
		s.logger.Warn(msg, fields)
		return
	}
	s.logger.Error(msg, fields)
}
