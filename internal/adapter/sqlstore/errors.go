package sqlstore

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

// wrapError maps driver errors onto domain.ErrPersistence, keeping the
// constraint that failed readable.
func wrapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23502":
			return domain.Persistence(op, fmt.Errorf("required field is missing: %s", pqErr.Column))
		case "23503":
			return domain.Persistence(op, fmt.Errorf("referenced car does not exist"))
		case "23514":
			return domain.Persistence(op, fmt.Errorf("check constraint %s violated", pqErr.Constraint))
		default:
			return domain.Persistence(op, pqErr)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code == sqlite3.ErrConstraint {
			return domain.Persistence(op, fmt.Errorf("constraint violated: %s", liteErr.Error()))
		}
		return domain.Persistence(op, liteErr)
	}

	return domain.Persistence(op, err)
}
