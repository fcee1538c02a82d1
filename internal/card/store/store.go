package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/cardly/internal/audit/store"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	c.id, c.code, c.balance, c.status, c.franchisee_id, c.establishment_id,
	c.customer_id, c.activated_at, c.used_at, c.created_at, c.updated_at
`

var scopeColumns = access.Columns{Franchisee: "c.franchisee_id", Establishment: "c.establishment_id"}

// Scan reads a card row in selectColumns order.
func Scan(s database.Scanner) (*card.Card, error) {
	var (
		c      card.Card
		status string
	)

	if err := s.Scan(
		&c.ID, &c.Code, &c.Balance, &status, &c.FranchiseeID, &c.EstablishmentID,
		&c.CustomerID, &c.ActivatedAt, &c.UsedAt, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = card.Status(status)

	return &c, nil
}

// Lock reads the card and holds its row lock until q's transaction ends.
// Concurrent balance mutations of one card serialize here.
func Lock(ctx context.Context, q database.Querier, id uuid.UUID) (*card.Card, error) {
	query := `SELECT ` + selectColumns + ` FROM cards c WHERE c.id = $1 FOR UPDATE`

	c, err := Scan(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "card", id)
	}

	return c, nil
}

// Save writes the mutable columns of c.
func Save(ctx context.Context, q database.Querier, c *card.Card) error {
	query := `
		UPDATE cards
		SET balance = $1, status = $2, establishment_id = $3, customer_id = $4,
			activated_at = $5, used_at = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		c.Balance,
		c.Status,
		c.EstablishmentID,
		c.CustomerID,
		c.ActivatedAt,
		c.UsedAt,
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return database.MapError(err, "card", c.ID)
	}

	return nil
}

func (s *Store) CreateCard(ctx context.Context, c *card.Card, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO cards (code, balance, status, franchisee_id, establishment_id, customer_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			c.Code,
			c.Balance,
			c.Status,
			c.FranchiseeID,
			c.EstablishmentID,
			c.CustomerID,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return database.MapError(err, "card", c.Code)
		}

		rec.EntityID = c.ID
		rec.After = c

		return auditStore.Insert(ctx, tx, rec)
	})
}

func (s *Store) GetCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	query := `SELECT ` + selectColumns + ` FROM cards c WHERE c.id = $1`

	c, err := Scan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "card", id)
	}

	return c, nil
}

func (s *Store) GetCardByCode(ctx context.Context, code string) (*card.Card, error) {
	query := `SELECT ` + selectColumns + ` FROM cards c WHERE c.code = $1`

	c, err := Scan(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, database.MapError(err, "card", code)
	}

	return c, nil
}

func (s *Store) ListCards(ctx context.Context, scope access.Scope, filter card.ListFilter) ([]*card.Card, error) {
	var w database.Where

	scope.Apply(&w, scopeColumns)

	if filter.Status != nil {
		w.Add("c.status = ?", *filter.Status)
	}

	if filter.EstablishmentID != nil {
		w.Add("c.establishment_id = ?", *filter.EstablishmentID)
	}

	if filter.Code != "" {
		w.Add("c.code ILIKE ?", "%"+filter.Code+"%")
	}

	query := `SELECT ` + selectColumns + ` FROM cards c` + w.String() + ` ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card

	for rows.Next() {
		c, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}

		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}

	return cards, nil
}

func (s *Store) UpdateCard(ctx context.Context, id uuid.UUID, mutate func(*card.Card) error, rec audit.Entry) (*card.Card, error) {
	var updated *card.Card

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := Lock(ctx, tx, id)
		if err != nil {
			return err
		}

		before := *c
		if err := mutate(c); err != nil {
			return err
		}

		if err := Save(ctx, tx, c); err != nil {
			return err
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

func (s *Store) DeleteCard(ctx context.Context, id uuid.UUID, check func(*card.Card) error, rec audit.Entry) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := Lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := check(c); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE card_id = $1`, id).Scan(&count); err != nil {
			return fmt.Errorf("counting card transactions: %w", err)
		}

		if count > 0 {
			return apperr.Conflict("card %s has %d transactions and cannot be deleted", c.Code, count)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id); err != nil {
			return database.MapError(err, "card", id)
		}

		rec.EntityID = c.ID
		rec.Before = c

		return auditStore.Insert(ctx, tx, rec)
	})
}
