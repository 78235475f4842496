// Package jsonfile keeps the car collection in memory and, when given a
// path, snapshots the whole collection to a single JSON document after
// every mutation.
//
// Layout of the snapshot: one JSON array of cars, each with its trips.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

type CarRepository struct {
	mu     sync.RWMutex
	path   string
	cars   []*domain.Car
	nextID int
}

// NewMemoryRepository returns a repository without a snapshot file.
// Data is lost on restart.
func NewMemoryRepository() *CarRepository {
	return &CarRepository{nextID: 1, cars: []*domain.Car{}}
}

// NewCarRepository loads the snapshot at path. A missing file is an empty
// store; an unreadable or corrupt one is an error.
func NewCarRepository(path string) (*CarRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cars, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}

	r := &CarRepository{path: path, cars: cars, nextID: 1}
	for _, c := range cars {
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r, nil
}

func loadSnapshot(path string) ([]*domain.Car, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Car{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cars []*domain.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if cars == nil {
		cars = []*domain.Car{}
	}
	for _, c := range cars {
		if c.Trips == nil {
			c.Trips = []domain.Trip{}
		}
		for i := range c.Trips {
			c.Trips[i].CarID = c.ID
		}
	}
	return cars, nil
}

// writeSnapshot replaces the file through a temp file and rename, so a
// failed write leaves the previous snapshot intact.
func writeSnapshot(path string, cars []*domain.Car) error {
	data, err := json.MarshalIndent(cars, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// commit persists next and only then makes it the live collection.
// Callers hold r.mu.
func (r *CarRepository) commit(next []*domain.Car) error {
	if r.path != "" {
		if err := writeSnapshot(r.path, next); err != nil {
			return domain.Persistence("write snapshot", err)
		}
	}
	r.cars = next
	return nil
}

func (r *CarRepository) snapshot() []*domain.Car {
	out := make([]*domain.Car, len(r.cars))
	for i, c := range r.cars {
		out[i] = c.Clone()
	}
	return out
}

func (r *CarRepository) indexOf(id int) int {
	for i, c := range r.cars {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *CarRepository) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := filter.Apply(r.cars)
	for i, c := range cars {
		cars[i] = c.Clone()
	}
	return cars, nil
}

func (r *CarRepository) GetCar(ctx context.Context, id int) (*domain.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.CarNotFound(id)
	}
	return r.cars[i].Clone(), nil
}

func (r *CarRepository) CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	car := domain.NewCar(r.nextID, input)
	next := append(r.snapshot(), car)
	if err := r.commit(next); err != nil {
		return nil, err
	}
	r.nextID++
	return car.Clone(), nil
}

func (r *CarRepository) UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.CarNotFound(id)
	}

	next := r.snapshot()
	next[i].Apply(input)
	if err := r.commit(next); err != nil {
		return nil, err
	}
	return next[i].Clone(), nil
}

func (r *CarRepository) DeleteCar(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.CarNotFound(id)
	}

	current := r.snapshot()
	next := append(current[:i:i], current[i+1:]...)
	return r.commit(next)
}

func (r *CarRepository) AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(carID)
	if i < 0 {
		return nil, domain.CarNotFound(carID)
	}
	if err := input.CheckBounds(); err != nil {
		return nil, err
	}

	next := r.snapshot()
	car := next[i]
	trip := car.AppendTrip(car.NextTripID(), input)
	if err := r.commit(next); err != nil {
		return nil, err
	}
	trip = trip.Clone()
	return &trip, nil
}

func (r *CarRepository) Close() error {
	return nil
}
