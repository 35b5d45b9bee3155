// Package pgerr classifies PostgreSQL driver errors for the repositories.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE for unique_violation.
const UniqueViolation pq.ErrorCode = "23505"

// IsUniqueViolation reports whether err was raised by a unique constraint or index.
// It understands both lib/pq errors and GORM's translated ErrDuplicatedKey.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == UniqueViolation
	}

	return false
}

// Constraint returns the name of the violated constraint, or "" when err is not a
// lib/pq error.
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
