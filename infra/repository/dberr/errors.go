// Package dberr maps gorm and driver errors to the domain error set. The
// concrete repositories and the unit of work both return mapped errors.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/ledgerbook/pkg/domain"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// domainErrors pass through the mapper untouched.
var domainErrors = []error{
	domain.ErrNotFound,
	domain.ErrDuplicateName,
	domain.ErrInvalidAccount,
	domain.ErrStorageUnavailable,
	domain.ErrValidation,
	domain.ErrInvalidAccountType,
}

// MapGormErrorToDomain converts GORM and driver errors to domain errors.
// Errors that are already domain errors are returned unchanged; anything
// unrecognised is wrapped in domain.ErrStorageUnavailable.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateName
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrInvalidAccount
	}

	// modernc.org/sqlite errors are not translated by the gorm sqlite dialector
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return domain.ErrDuplicateName
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return domain.ErrInvalidAccount
		}
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domain.ErrDuplicateName
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domain.ErrInvalidAccount
	}

	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

// WrapError wraps a GORM operation and automatically maps errors.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
