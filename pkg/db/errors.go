package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure. With
// no names any unique failure matches; otherwise one of the names must match
// the Postgres constraint or appear in the driver message (SQLite reports
// "table.column" instead of constraint names).
func IsUniqueViolation(err error, names ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode && matchesAny(pgErr.ConstraintName, names)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode && matchesAny(pqErr.Constraint, names)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) && len(names) == 0 {
		return true
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return len(names) == 0 || containsAny(msg, names)
}

func matchesAny(constraint string, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if constraint == name {
			return true
		}
	}
	return false
}

func containsAny(msg string, names []string) bool {
	for _, name := range names {
		if name != "" && strings.Contains(msg, name) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is GORM's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
