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
	"github.com/MrJamesThe3rd/cardly/internal/display"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	d.id, d.franchisee_id, d.establishment_id, d.unit_type, d.status,
	d.installed_at, d.created_at, d.updated_at
`

var scopeColumns = access.Columns{Franchisee: "d.franchisee_id", Establishment: "d.establishment_id"}

func scanDisplay(s database.Scanner) (*display.Display, error) {
	var (
		d      display.Display
		status string
	)

	if err := s.Scan(
		&d.ID, &d.FranchiseeID, &d.EstablishmentID, &d.UnitType, &status,
		&d.InstalledAt, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Status = display.Status(status)

	return &d, nil
}

func lock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*display.Display, error) {
	query := `SELECT ` + selectColumns + ` FROM displays d WHERE d.id = $1 FOR UPDATE`

	d, err := scanDisplay(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "display", id)
	}

	return d, nil
}

func (s *Store) CreateDisplay(ctx context.Context, d *display.Display, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO displays (franchisee_id, establishment_id, unit_type, status, installed_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			d.FranchiseeID,
			d.EstablishmentID,
			d.UnitType,
			d.Status,
			d.InstalledAt,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return database.MapError(err, "display", d.UnitType)
		}

		rec.EntityID = d.ID
		rec.After = d

		return auditStore.Insert(ctx, tx, rec)
	})
}

func (s *Store) GetDisplay(ctx context.Context, id uuid.UUID) (*display.Display, error) {
	query := `SELECT ` + selectColumns + ` FROM displays d WHERE d.id = $1`

	d, err := scanDisplay(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "display", id)
	}

	return d, nil
}

func (s *Store) ListDisplays(ctx context.Context, scope access.Scope, filter display.ListFilter) ([]*display.Display, error) {
	var w database.Where

	scope.Apply(&w, scopeColumns)

	if filter.Status != nil {
		w.Add("d.status = ?", *filter.Status)
	}

	if filter.EstablishmentID != nil {
		w.Add("d.establishment_id = ?", *filter.EstablishmentID)
	}

	query := `SELECT ` + selectColumns + ` FROM displays d` + w.String() + ` ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing displays: %w", err)
	}
	defer rows.Close()

	var out []*display.Display

	for rows.Next() {
		d, err := scanDisplay(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning display: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating display rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateDisplay(ctx context.Context, id uuid.UUID, mutate func(*display.Display) error, rec audit.Entry) (*display.Display, error) {
	var updated *display.Display

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		d, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		before := *d
		if err := mutate(d); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, `
			UPDATE displays
			SET establishment_id = $1, unit_type = $2, status = $3, installed_at = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at
		`, d.EstablishmentID, d.UnitType, d.Status, d.InstalledAt, d.ID).Scan(&d.UpdatedAt); err != nil {
			return database.MapError(err, "display", id)
		}

		rec.EntityID = d.ID
		rec.Before = before
		rec.After = d

		if err := auditStore.Insert(ctx, tx, rec); err != nil {
			return err
		}

		updated = d

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Store) DeleteDisplay(ctx context.Context, id uuid.UUID, check func(*display.Display) error, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		d, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := check(d); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM displays WHERE id = $1`, id); err != nil {
			return database.MapError(err, "display", id)
		}

		rec.EntityID = d.ID
		rec.Before = d

		return auditStore.Insert(ctx, tx, rec)
	})
}
