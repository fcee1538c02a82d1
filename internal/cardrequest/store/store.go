package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/cardly/internal/audit/store"
	"github.com/MrJamesThe3rd/cardly/internal/cardrequest"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	r.id, r.establishment_id, r.franchisee_id, r.quantity, r.status, r.notes,
	r.approved_at, r.shipped_at, r.delivered_at, r.created_at, r.updated_at
`

var scopeColumns = access.Columns{Franchisee: "r.franchisee_id", Establishment: "r.establishment_id"}

func scanRequest(s database.Scanner) (*cardrequest.CardRequest, error) {
	var (
		r      cardrequest.CardRequest
		status string
	)

	if err := s.Scan(
		&r.ID, &r.EstablishmentID, &r.FranchiseeID, &r.Quantity, &status, &r.Notes,
		&r.ApprovedAt, &r.ShippedAt, &r.DeliveredAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = cardrequest.Status(status)

	return &r, nil
}

func (s *Store) CreateRequest(ctx context.Context, r *cardrequest.CardRequest, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO card_requests (establishment_id, franchisee_id, quantity, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			r.EstablishmentID,
			r.FranchiseeID,
			r.Quantity,
			r.Status,
			r.Notes,
		).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return database.MapError(err, "card request", r.EstablishmentID)
		}

		rec.EntityID = r.ID
		rec.After = r

		return auditStore.Insert(ctx, tx, rec)
	})
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*cardrequest.CardRequest, error) {
	query := `SELECT ` + selectColumns + ` FROM card_requests r WHERE r.id = $1`

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "card request", id)
	}

	return r, nil
}

func (s *Store) ListRequests(ctx context.Context, scope access.Scope, filter cardrequest.ListFilter) ([]*cardrequest.CardRequest, error) {
	var w database.Where

	scope.Apply(&w, scopeColumns)

	if filter.Status != nil {
		w.Add("r.status = ?", *filter.Status)
	}

	if filter.EstablishmentID != nil {
		w.Add("r.establishment_id = ?", *filter.EstablishmentID)
	}

	query := `SELECT ` + selectColumns + ` FROM card_requests r` + w.String() + ` ORDER BY r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing card requests: %w", err)
	}
	defer rows.Close()

	var out []*cardrequest.CardRequest

	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card request: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card request rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateRequest(ctx context.Context, id uuid.UUID, mutate func(*cardrequest.CardRequest) error, rec audit.Entry) (*cardrequest.CardRequest, error) {
	var updated *cardrequest.CardRequest

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `SELECT ` + selectColumns + ` FROM card_requests r WHERE r.id = $1 FOR UPDATE`

		r, err := scanRequest(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return database.MapError(err, "card request", id)
		}

		before := *r
		if err := mutate(r); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, `
			UPDATE card_requests
			SET quantity = $1, status = $2, notes = $3, approved_at = $4, shipped_at = $5, delivered_at = $6, updated_at = NOW()
			WHERE id = $7
			RETURNING updated_at
		`, r.Quantity, r.Status, r.Notes, r.ApprovedAt, r.ShippedAt, r.DeliveredAt, r.ID).Scan(&r.UpdatedAt); err != nil {
			return database.MapError(err, "card request", id)
		}

		rec.EntityID = r.ID
		rec.Before = before
		rec.After = r

		if err := auditStore.Insert(ctx, tx, rec); err != nil {
			return err
		}

		updated = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
