// Package dberr maps driver-specific constraint failures onto domain errors,
// so both backends report duplicates and dangling references the same way.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

// SQLSTATE codes, class 23 (integrity constraint violation).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Translate returns domain.ErrAlreadyExists or domain.ErrInvalidReference wrapping err
// when err is a constraint failure. Any other error is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return byCode(string(pqErr.Code), err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return byCode(pgErr.Code, err)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
		}
	}

	return err
}

func byCode(code string, err error) error {
	switch code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
	}
	return err
}
