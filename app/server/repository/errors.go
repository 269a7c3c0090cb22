package repository

import (
	"errors"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicated = errors.New("duplicated record")

// Postgres 错误码，见 https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeUniqueViolation = "23505"
)

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
		return errors.Join(ErrDuplicated, err)
	}
	return err
}
