// Package redis stores cars in Redis.
//
// Keys:
//
//	<prefix>:car:<id>   JSON document of the car with its trips
//	<prefix>:cars       sorted set of car ids, score = id (store order)
//	<prefix>:car_seq    INCR counter handing out car ids
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

type CarRepository struct {
	client *redis.Client
	prefix string
}

func NewCarRepository(client *redis.Client, prefix string) *CarRepository {
	return &CarRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *CarRepository) carKey(id int) string {
	return r.prefix + ":car:" + strconv.Itoa(id)
}

func (r *CarRepository) indexKey() string {
	return r.prefix + ":cars"
}

func (r *CarRepository) seqKey() string {
	return r.prefix + ":car_seq"
}

func decodeCar(raw string) (*domain.Car, error) {
	var car domain.Car
	if err := json.Unmarshal([]byte(raw), &car); err != nil {
		return nil, err
	}
	if car.Trips == nil {
		car.Trips = []domain.Trip{}
	}
	for i := range car.Trips {
		car.Trips[i].CarID = car.ID
	}
	return &car, nil
}

func getCar(ctx context.Context, c redis.Cmdable, key string, id int) (*domain.Car, error) {
	raw, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.CarNotFound(id)
	}
	if err != nil {
		return nil, domain.Persistence("get car", err)
	}
	car, err := decodeCar(raw)
	if err != nil {
		return nil, domain.Persistence("decode car", err)
	}
	return car, nil
}

func (r *CarRepository) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, domain.Persistence("list car ids", err)
	}
	if len(ids) == 0 {
		return []*domain.Car{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.prefix+":car:"+id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.Persistence("list cars", err)
	}

	cars := make([]*domain.Car, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// deleted between ZRANGE and MGET
			continue
		}
		car, err := decodeCar(raw)
		if err != nil {
			return nil, domain.Persistence("decode car", err)
		}
		cars = append(cars, car)
	}
	return filter.Apply(cars), nil
}

func (r *CarRepository) GetCar(ctx context.Context, id int) (*domain.Car, error) {
	return getCar(ctx, r.client, r.carKey(id), id)
}

func (r *CarRepository) CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, domain.Persistence("allocate car id", err)
	}

	car := domain.NewCar(int(id), input)
	data, err := json.Marshal(car)
	if err != nil {
		return nil, domain.Persistence("encode car", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.carKey(car.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(car.ID), Member: car.ID})
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("insert car", err)
	}
	return car, nil
}

// modify loads the car under WATCH, lets fn change it and writes it back
// in MULTI/EXEC. A concurrent write to the same car aborts the EXEC.
func (r *CarRepository) modify(ctx context.Context, id int, fn func(car *domain.Car) error) (*domain.Car, error) {
	key := r.carKey(id)
	var car *domain.Car

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		var err error
		car, err = getCar(ctx, tx, key, id)
		if err != nil {
			return err
		}
		if err := fn(car); err != nil {
			return err
		}

		data, err := json.Marshal(car)
		if err != nil {
			return domain.Persistence("encode car", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return domain.Persistence("write car", err)
		}
		return nil
	}, key)
	if err != nil {
		return nil, r.watchError(err)
	}
	return car, nil
}

func (r *CarRepository) watchError(err error) error {
	if errors.Is(err, domain.ErrCarNotFound) || errors.Is(err, domain.ErrBadTrip) || errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return domain.Persistence("transaction", err)
}

func (r *CarRepository) UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error) {
	return r.modify(ctx, id, func(car *domain.Car) error {
		car.Apply(input)
		return nil
	})
}

func (r *CarRepository) DeleteCar(ctx context.Context, id int) error {
	key := r.carKey(id)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return domain.Persistence("get car", err)
		}
		if n == 0 {
			return domain.CarNotFound(id)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, r.indexKey(), id)
			return nil
		})
		if err != nil {
			return domain.Persistence("delete car", err)
		}
		return nil
	}, key)
	if err != nil {
		return r.watchError(err)
	}
	return nil
}

func (r *CarRepository) AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error) {
	var trip domain.Trip
	_, err := r.modify(ctx, carID, func(car *domain.Car) error {
		if err := input.CheckBounds(); err != nil {
			return err
		}
		trip = car.AppendTrip(car.NextTripID(), input)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *CarRepository) Close() error {
	return r.client.Close()
}
