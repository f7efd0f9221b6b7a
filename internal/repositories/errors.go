package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAlreadyExists is returned when an insert or update hits a unique index.
var ErrAlreadyExists = errors.New("record already exists")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translateWriteError maps driver errors of a write to repository sentinels.
func translateWriteError(err error, conflict error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return conflict
	}
	return err
}
