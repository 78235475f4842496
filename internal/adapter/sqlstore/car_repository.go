package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type CarRepository struct {
	db      *sql.DB
	dialect string
}

func NewCarRepository(db *sql.DB, dialect string) *CarRepository {
	return &CarRepository{
		db:      db,
		dialect: dialect,
	}
}

// rebind rewrites ? placeholders into $n for postgres.
func (r *CarRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// withTx runs fn in one transaction. Anything but a successful commit
// rolls back.
func (r *CarRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapError("commit", err)
	}
	return nil
}

func filterClause(f domain.CarFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Size != "" {
		conds = append(conds, "size = ?")
		args = append(args, f.Size)
	}
	if f.Fuel != "" {
		conds = append(conds, "fuel = ?")
		args = append(args, f.Fuel)
	}
	if f.Doors != nil {
		conds = append(conds, "doors = ?")
		args = append(args, *f.Doors)
	}
	if f.Transmission != "" {
		conds = append(conds, "transmission = ?")
		args = append(args, f.Transmission)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *CarRepository) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	where, args := filterClause(filter)

	query := `SELECT id, size, fuel, doors, transmission FROM cars` + where + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, wrapError("list cars", err)
	}
	defer rows.Close()

	cars := []*domain.Car{}
	byID := make(map[int]*domain.Car)
	for rows.Next() {
		car := &domain.Car{Trips: []domain.Trip{}}
		if err := rows.Scan(&car.ID, &car.Size, &car.Fuel, &car.Doors, &car.Transmission); err != nil {
			return nil, wrapError("scan car", err)
		}
		cars = append(cars, car)
		byID[car.ID] = car
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list cars", err)
	}
	if len(cars) == 0 {
		return cars, nil
	}

	tripQuery := `SELECT id, car_id, trip_start, trip_end, description FROM trips
		WHERE car_id IN (SELECT id FROM cars` + where + `)
		ORDER BY id`
	trips, err := r.queryTrips(ctx, r.db, tripQuery, args...)
	if err != nil {
		return nil, err
	}
	for _, trip := range trips {
		if car, ok := byID[trip.CarID]; ok {
			car.Trips = append(car.Trips, trip)
		}
	}

	return cars, nil
}

func (r *CarRepository) queryTrips(ctx context.Context, q querier, query string, args ...interface{}) ([]domain.Trip, error) {
	rows, err := q.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, wrapError("list trips", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		var description sql.NullString
		if err := rows.Scan(&trip.ID, &trip.CarID, &trip.Start, &trip.End, &description); err != nil {
			return nil, wrapError("scan trip", err)
		}
		if description.Valid {
			d := description.String
			trip.Description = &d
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list trips", err)
	}
	return trips, nil
}

func (r *CarRepository) getCar(ctx context.Context, q querier, id int) (*domain.Car, error) {
	query := `SELECT id, size, fuel, doors, transmission FROM cars WHERE id = ?`

	car := &domain.Car{Trips: []domain.Trip{}}
	err := q.QueryRowContext(ctx, r.rebind(query), id).Scan(
		&car.ID,
		&car.Size,
		&car.Fuel,
		&car.Doors,
		&car.Transmission,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.CarNotFound(id)
	}
	if err != nil {
		return nil, wrapError("get car", err)
	}

	trips, err := r.queryTrips(ctx, q,
		`SELECT id, car_id, trip_start, trip_end, description FROM trips WHERE car_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	car.Trips = append(car.Trips, trips...)

	return car, nil
}

func (r *CarRepository) GetCar(ctx context.Context, id int) (*domain.Car, error) {
	return r.getCar(ctx, r.db, id)
}

func (r *CarRepository) CreateCar(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	query := `INSERT INTO cars (size, fuel, doors, transmission)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	var car *domain.Car
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRowContext(ctx, r.rebind(query),
			input.Size,
			input.Fuel,
			input.Doors,
			input.Transmission,
		).Scan(&id)
		if err != nil {
			return wrapError("insert car", err)
		}
		car = domain.NewCar(id, input)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) UpdateCar(ctx context.Context, id int, input domain.CarInput) (*domain.Car, error) {
	query := `UPDATE cars
		SET size = ?, fuel = ?, doors = ?, transmission = ?
		WHERE id = ?`

	var car *domain.Car
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, r.rebind(query),
			input.Size,
			input.Fuel,
			input.Doors,
			input.Transmission,
			id,
		)
		if err != nil {
			return wrapError("update car", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return wrapError("update car", err)
		}
		if rowsAffected == 0 {
			return domain.CarNotFound(id)
		}

		car, err = r.getCar(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) DeleteCar(ctx context.Context, id int) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.rebind(`DELETE FROM trips WHERE car_id = ?`), id); err != nil {
			return wrapError("delete trips", err)
		}

		result, err := tx.ExecContext(ctx, r.rebind(`DELETE FROM cars WHERE id = ?`), id)
		if err != nil {
			return wrapError("delete car", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return wrapError("delete car", err)
		}
		if rowsAffected == 0 {
			return domain.CarNotFound(id)
		}
		return nil
	})
}

func (r *CarRepository) AddTrip(ctx context.Context, carID int, input domain.TripInput) (*domain.Trip, error) {
	if err := input.CheckBounds(); err != nil {
		return nil, err
	}

	query := `INSERT INTO trips (car_id, trip_start, trip_end, description)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	var trip domain.Trip
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, r.rebind(`SELECT 1 FROM cars WHERE id = ?`), carID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CarNotFound(carID)
		}
		if err != nil {
			return wrapError("get car", err)
		}

		var description sql.NullString
		if input.Description != nil {
			description = sql.NullString{String: *input.Description, Valid: true}
		}

		var id int
		err = tx.QueryRowContext(ctx, r.rebind(query),
			carID,
			input.Start,
			input.End,
			description,
		).Scan(&id)
		if err != nil {
			return wrapError("insert trip", err)
		}

		trip = domain.NewTrip(id, carID, input)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *CarRepository) Close() error {
	return r.db.Close()
}
