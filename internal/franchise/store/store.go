package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/cardly/internal/audit/store"
	"github.com/MrJamesThe3rd/cardly/internal/database"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/gateway"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectFranchiseeColumns = `
	f.id, f.franchisor_id, f.name, f.document, f.commission_rate,
	f.external_state, f.external_id, f.external_reason, f.created_at, f.updated_at
`

const selectEstablishmentColumns = `
	e.id, e.franchisee_id, e.name, e.document,
	e.external_state, e.external_id, e.external_reason, e.created_at, e.updated_at
`

func scanLinkage(state string, externalID, reason sql.NullString) gateway.Linkage {
	return gateway.Linkage{
		State:      gateway.LinkState(state),
		ExternalID: externalID.String,
		Reason:     reason.String,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanFranchisee(s database.Scanner) (*franchise.Franchisee, error) {
	var (
		f                  franchise.Franchisee
		state              string
		externalID, reason sql.NullString
	)

	if err := s.Scan(
		&f.ID, &f.FranchisorID, &f.Name, &f.Document, &f.CommissionRate,
		&state, &externalID, &reason, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.Linkage = scanLinkage(state, externalID, reason)

	return &f, nil
}

func scanEstablishment(s database.Scanner) (*franchise.Establishment, error) {
	var (
		e                  franchise.Establishment
		state              string
		externalID, reason sql.NullString
	)

	if err := s.Scan(
		&e.ID, &e.FranchiseeID, &e.Name, &e.Document,
		&state, &externalID, &reason, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Linkage = scanLinkage(state, externalID, reason)

	return &e, nil
}

func (s *Store) CreateFranchisee(ctx context.Context, f *franchise.Franchisee, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO franchisees (franchisor_id, name, document, commission_rate, external_state, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			f.FranchisorID,
			f.Name,
			f.Document,
			f.CommissionRate,
			f.Linkage.State,
		).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return database.MapError(err, "franchisee", f.Document)
		}

		rec.EntityID = f.ID
		rec.After = f

		return auditStore.Insert(ctx, tx, rec)
	})
}

func (s *Store) GetFranchisee(ctx context.Context, id uuid.UUID) (*franchise.Franchisee, error) {
	query := `SELECT ` + selectFranchiseeColumns + ` FROM franchisees f WHERE f.id = $1`

	f, err := scanFranchisee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "franchisee", id)
	}

	return f, nil
}

func (s *Store) ListFranchisees(ctx context.Context, scope access.Scope) ([]*franchise.Franchisee, error) {
	var w database.Where

	scope.Apply(&w, access.Columns{Franchisee: "f.id"})

	query := `SELECT ` + selectFranchiseeColumns + ` FROM franchisees f` + w.String() + ` ORDER BY f.name ASC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing franchisees: %w", err)
	}
	defer rows.Close()

	var out []*franchise.Franchisee

	for rows.Next() {
		f, err := scanFranchisee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning franchisee: %w", err)
		}

		out = append(out, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating franchisee rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateFranchisee(ctx context.Context, id uuid.UUID, mutate func(*franchise.Franchisee) error, rec audit.Entry) (*franchise.Franchisee, error) {
	var updated *franchise.Franchisee

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `SELECT ` + selectFranchiseeColumns + ` FROM franchisees f WHERE f.id = $1 FOR UPDATE`

		f, err := scanFranchisee(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return database.MapError(err, "franchisee", id)
		}

		before := *f
		if err := mutate(f); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, `
			UPDATE franchisees SET name = $1, commission_rate = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING updated_at
		`, f.Name, f.CommissionRate, f.ID).Scan(&f.UpdatedAt); err != nil {
			return database.MapError(err, "franchisee", id)
		}

		rec.EntityID = f.ID
		rec.Before = before
		rec.After = f

		if err := auditStore.Insert(ctx, tx, rec); err != nil {
			return err
		}

		updated = f

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Store) SetFranchiseeLinkage(ctx context.Context, id uuid.UUID, l gateway.Linkage) error {
	return s.setLinkage(ctx, "franchisees", id, l)
}

func (s *Store) SetEstablishmentLinkage(ctx context.Context, id uuid.UUID, l gateway.Linkage) error {
	return s.setLinkage(ctx, "establishments", id, l)
}

func (s *Store) setLinkage(ctx context.Context, table string, id uuid.UUID, l gateway.Linkage) error {
	query := `UPDATE ` + table + `
		SET external_state = $1, external_id = $2, external_reason = $3, updated_at = NOW()
		WHERE id = $4`

	if _, err := s.db.ExecContext(ctx, query, l.State, nullable(l.ExternalID), nullable(l.Reason), id); err != nil {
		return fmt.Errorf("updating %s linkage: %w", table, err)
	}

	return nil
}

func (s *Store) CreateEstablishment(ctx context.Context, e *franchise.Establishment, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO establishments (franchisee_id, name, document, external_state, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			e.FranchiseeID,
			e.Name,
			e.Document,
			e.Linkage.State,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return database.MapError(err, "establishment", e.Document)
		}

		rec.EntityID = e.ID
		rec.After = e

		return auditStore.Insert(ctx, tx, rec)
	})
}

// GetEstablishment is unscoped; callers authorize the result themselves.
func (s *Store) GetEstablishment(ctx context.Context, id uuid.UUID) (*franchise.Establishment, error) {
	return GetEstablishment(ctx, s.db, id)
}

// GetEstablishment reads an establishment through q, which may be a ledger
// transaction.
func GetEstablishment(ctx context.Context, q database.Querier, id uuid.UUID) (*franchise.Establishment, error) {
	query := `SELECT ` + selectEstablishmentColumns + ` FROM establishments e WHERE e.id = $1`

	e, err := scanEstablishment(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "establishment", id)
	}

	return e, nil
}

func (s *Store) ListEstablishments(ctx context.Context, scope access.Scope) ([]*franchise.Establishment, error) {
	var w database.Where

	scope.Apply(&w, access.Columns{Franchisee: "e.franchisee_id", Establishment: "e.id"})

	query := `SELECT ` + selectEstablishmentColumns + ` FROM establishments e` + w.String() + ` ORDER BY e.name ASC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing establishments: %w", err)
	}
	defer rows.Close()

	var out []*franchise.Establishment

	for rows.Next() {
		e, err := scanEstablishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning establishment: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating establishment rows: %w", err)
	}

	return out, nil
}
