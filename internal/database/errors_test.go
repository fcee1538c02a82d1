package database_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

func TestMapError(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		wantKind apperr.Kind
	}

	tests := []testCase{
		{
			name:     "DuplicateCommissionForTransaction",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "commissions_transaction_id_key"},
			wantKind: apperr.KindConflict,
		},
		{
			name:     "WrappedUniqueViolation",
			err:      fmt.Errorf("insert card: %w", &pgconn.PgError{Code: "23505", ConstraintName: "cards_code_key"}),
			wantKind: apperr.KindConflict,
		},
		{
			name:     "ForeignKeyViolation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "transactions_card_id_fkey"},
			wantKind: apperr.KindConflict,
		},
		{
			name:     "CheckViolation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "cards_balance_check"},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "NoRows",
			err:      sql.ErrNoRows,
			wantKind: apperr.KindNotFound,
		},
		{
			name:     "OtherPgError",
			err:      &pgconn.PgError{Code: "40001"},
			wantKind: apperr.KindInternal,
		},
		{
			name:     "PlainError",
			err:      errors.New("connection reset"),
			wantKind: apperr.KindInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := database.MapError(tc.err, "commission", 1)

			require.Error(t, got)
			assert.Equal(t, tc.wantKind, apperr.KindOf(got))
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, database.MapError(nil, "card", 1))
}

func TestMapError_PlainErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")

	got := database.MapError(cause, "card", 7)

	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "card 7")
}
