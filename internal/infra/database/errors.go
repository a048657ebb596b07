package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// sqlState extracts the Postgres SQLSTATE from either driver's error type.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUndefinedTable(err error) bool {
	return sqlState(err) == codeUndefinedTable
}

func isUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}
