package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrInvalidReference = errors.New("invalid foreign key reference")
	ErrInvalidInput     = errors.New("invalid input value")
)

// postgres SQLSTATE codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextValue    = "22P02"
)

// wrapError classifies driver errors so that callers can branch with errors.Is.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pqErr.Constraint)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidReference, pqErr.Constraint)
		case checkViolation, invalidTextValue:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidInput, pqErr.Constraint)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
