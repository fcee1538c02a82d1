package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/cardly/internal/audit/store"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	c.id, c.amount, c.percentage, c.status, c.franchisee_id, c.establishment_id,
	c.transaction_id, c.paid_at, c.created_at, c.updated_at
`

var scopeColumns = access.Columns{Franchisee: "c.franchisee_id", Establishment: "c.establishment_id"}

// Scan reads a commission row in selectColumns order. It is shared with the
// transaction store, which joins commissions onto usage rows.
func Scan(s database.Scanner) (*commission.Commission, error) {
	var (
		c      commission.Commission
		status string
	)

	if err := s.Scan(
		&c.ID, &c.Amount, &c.Percentage, &status, &c.FranchiseeID, &c.EstablishmentID,
		&c.TransactionID, &c.PaidAt, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = commission.Status(status)

	return &c, nil
}

// Insert writes c through q; the ledger calls it inside its unit of work.
func Insert(ctx context.Context, q database.Querier, c *commission.Commission) error {
	query := `
		INSERT INTO commissions (amount, percentage, status, franchisee_id, establishment_id, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		c.Amount,
		c.Percentage,
		c.Status,
		c.FranchiseeID,
		c.EstablishmentID,
		c.TransactionID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return database.MapError(err, "commission", c.TransactionID)
	}

	return nil
}

func (s *Store) GetCommission(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	query := `SELECT ` + selectColumns + ` FROM commissions c WHERE c.id = $1`

	c, err := Scan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "commission", id)
	}

	return c, nil
}

func (s *Store) ListCommissions(ctx context.Context, scope access.Scope, filter commission.ListFilter) ([]*commission.Commission, error) {
	var w database.Where

	scope.Apply(&w, scopeColumns)

	if filter.Status != nil {
		w.Add("c.status = ?", *filter.Status)
	}

	if filter.FranchiseeID != nil {
		w.Add("c.franchisee_id = ?", *filter.FranchiseeID)
	}

	if filter.EstablishmentID != nil {
		w.Add("c.establishment_id = ?", *filter.EstablishmentID)
	}

	if filter.TransactionID != nil {
		w.Add("c.transaction_id = ?", *filter.TransactionID)
	}

	if filter.StartDate != nil {
		w.Add("c.created_at >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		w.Add("c.created_at <= ?", *filter.EndDate)
	}

	query := `SELECT ` + selectColumns + ` FROM commissions c` + w.String() + ` ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing commissions: %w", err)
	}
	defer rows.Close()

	var out []*commission.Commission

	for rows.Next() {
		c, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning commission: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commission rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateCommission(ctx context.Context, id uuid.UUID, mutate func(*commission.Commission) error, rec audit.Entry) (*commission.Commission, error) {
	var updated *commission.Commission

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `SELECT ` + selectColumns + ` FROM commissions c WHERE c.id = $1 FOR UPDATE`

		c, err := Scan(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return database.MapError(err, "commission", id)
		}

		before := *c
		if err := mutate(c); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, `
			UPDATE commissions SET status = $1, paid_at = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING updated_at
		`, c.Status, c.PaidAt, c.ID).Scan(&c.UpdatedAt); err != nil {
			return fmt.Errorf("updating commission: %w", err)
		}

		rec.EntityID = c.ID
		rec.Before = before
		rec.After = c

		if err := auditStore.Insert(ctx, tx, rec); err != nil {
			return err
		}

		updated = c

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
