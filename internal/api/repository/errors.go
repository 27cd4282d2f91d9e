package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateLogin  = errors.New("login already exists")
	ErrAlreadyConsumed = errors.New("refresh token already consumed")
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognizes unique constraint failures from either backend,
// whether or not gorm translated the driver error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
