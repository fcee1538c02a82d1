package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// MapError translates driver errors into the apperr taxonomy. entity and id
// describe the row the statement targeted and only feed the message.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict("%s already exists (%s)", entity, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return apperr.Conflict("%s violates reference %s", entity, pgErr.ConstraintName)
		case codeCheckViolation:
			return apperr.Validation("%s violates constraint %s", entity, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
