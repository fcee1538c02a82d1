package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/cardly/internal/audit/store"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	cardStore "github.com/MrJamesThe3rd/cardly/internal/card/store"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	commissionStore "github.com/MrJamesThe3rd/cardly/internal/commission/store"
	"github.com/MrJamesThe3rd/cardly/internal/database"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	franchiseStore "github.com/MrJamesThe3rd/cardly/internal/franchise/store"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanTransaction reads a transaction row joined with its optional commission.
// Expected column order: selectTransactionColumns.
func scanTransaction(s database.Scanner) (*transaction.Transaction, error) {
	var (
		tx                          transaction.Transaction
		kind, status                string
		customerName, customerPhone sql.NullString
		receiptRef                  sql.NullString
		cmID                        *uuid.UUID
		cmAmount, cmPercentage      decimal.NullDecimal
		cmStatus                    sql.NullString
		cmPaidAt                    sql.NullTime
		cmCreatedAt                 sql.NullTime
	)

	if err := s.Scan(
		&tx.ID, &kind, &tx.Amount, &status, &tx.CardID, &tx.EstablishmentID, &tx.FranchiseeID,
		&customerName, &customerPhone, &receiptRef, &tx.CreatedAt, &tx.UpdatedAt,
		&cmID, &cmAmount, &cmPercentage, &cmStatus, &cmPaidAt, &cmCreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kind)
	tx.Status = transaction.Status(status)
	tx.CustomerName = customerName.String
	tx.CustomerPhone = customerPhone.String
	tx.ReceiptRef = receiptRef.String

	if cmID != nil {
		tx.Commission = &commission.Commission{
			ID:              *cmID,
			Amount:          cmAmount.Decimal,
			Percentage:      cmPercentage.Decimal,
			Status:          commission.Status(cmStatus.String),
			FranchiseeID:    tx.FranchiseeID,
			EstablishmentID: tx.EstablishmentID,
			TransactionID:   tx.ID,
			CreatedAt:       cmCreatedAt.Time,
		}

		if cmPaidAt.Valid {
			tx.Commission.PaidAt = &cmPaidAt.Time
		}
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.kind, t.amount, t.status, t.card_id, t.establishment_id, t.franchisee_id,
	t.customer_name, t.customer_phone, t.receipt_ref, t.created_at, t.updated_at,
	cm.id, cm.amount, cm.percentage, cm.status, cm.paid_at, cm.created_at
`

const fromTransactions = `
	FROM transactions t
	LEFT JOIN commissions cm ON cm.transaction_id = t.id`

var scopeColumns = access.Columns{Franchisee: "t.franchisee_id", Establishment: "t.establishment_id"}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + ` WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, database.MapError(err, "transaction", id)
	}

	return tx, nil
}

func buildWhere(scope access.Scope, filter transaction.ListFilter) *database.Where {
	var w database.Where

	scope.Apply(&w, scopeColumns)

	if filter.Kind != nil {
		w.Add("t.kind = ?", *filter.Kind)
	}

	if filter.Status != nil {
		w.Add("t.status = ?", *filter.Status)
	}

	if filter.CardID != nil {
		w.Add("t.card_id = ?", *filter.CardID)
	}

	if filter.EstablishmentID != nil {
		w.Add("t.establishment_id = ?", *filter.EstablishmentID)
	}

	if filter.StartDate != nil {
		w.Add("t.created_at >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		w.Add("t.created_at <= ?", *filter.EndDate)
	}

	return &w
}

func (s *Store) ListTransactions(ctx context.Context, scope access.Scope, filter transaction.ListFilter, page transaction.PageRequest) ([]*transaction.Transaction, error) {
	w := buildWhere(scope, filter)

	query := `SELECT ` + selectTransactionColumns + fromTransactions + w.String() +
		` ORDER BY t.created_at DESC LIMIT ` + w.Arg(page.Limit) + ` OFFSET ` + w.Arg(page.Offset)

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) SummarizeTransactions(ctx context.Context, scope access.Scope, filter transaction.ListFilter) ([]transaction.StatusTotal, error) {
	w := buildWhere(scope, filter)

	query := `SELECT t.status, COUNT(*), COALESCE(SUM(t.amount), 0) FROM transactions t` + w.String() + ` GROUP BY t.status`

	rows, err := s.db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("summarizing transactions: %w", err)
	}
	defer rows.Close()

	var totals []transaction.StatusTotal

	for rows.Next() {
		var (
			t      transaction.StatusTotal
			status string
		)

		if err := rows.Scan(&status, &t.Count, &t.Volume); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}

		t.Status = transaction.Status(status)
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summary rows: %w", err)
	}

	return totals, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

// BeginLedger opens the database transaction one recharge or usage runs in.
func (s *Store) BeginLedger(ctx context.Context) (transaction.LedgerTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

func (l *ledgerTx) Commit() error { return l.tx.Commit() }

// Rollback is a no-op after Commit.
func (l *ledgerTx) Rollback() error {
	if err := l.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}

	return nil
}

func (l *ledgerTx) LockCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	return cardStore.Lock(ctx, l.tx, id)
}

func (l *ledgerTx) GetEstablishment(ctx context.Context, id uuid.UUID) (*franchise.Establishment, error) {
	return franchiseStore.GetEstablishment(ctx, l.tx, id)
}

// CommissionRate reads the rate in force now. FOR SHARE keeps a concurrent
// rate change from committing between this read and the commission insert.
func (l *ledgerTx) CommissionRate(ctx context.Context, franchiseeID uuid.UUID) (decimal.Decimal, error) {
	var rate decimal.Decimal

	err := l.tx.QueryRowContext(ctx,
		`SELECT commission_rate FROM franchisees WHERE id = $1 FOR SHARE`, franchiseeID,
	).Scan(&rate)
	if err != nil {
		return decimal.Zero, database.MapError(err, "franchisee", franchiseeID)
	}

	return rate, nil
}

func (l *ledgerTx) SaveCard(ctx context.Context, c *card.Card) error {
	return cardStore.Save(ctx, l.tx, c)
}

func (l *ledgerTx) CreateTransaction(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (kind, amount, status, card_id, establishment_id, franchisee_id,
			customer_name, customer_phone, receipt_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := l.tx.QueryRowContext(ctx, query,
		t.Kind,
		t.Amount,
		t.Status,
		t.CardID,
		t.EstablishmentID,
		t.FranchiseeID,
		nullable(t.CustomerName),
		nullable(t.CustomerPhone),
		nullable(t.ReceiptRef),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return database.MapError(err, "transaction", t.CardID)
	}

	return nil
}

func (l *ledgerTx) CreateCommission(ctx context.Context, c *commission.Commission) error {
	return commissionStore.Insert(ctx, l.tx, c)
}

func (l *ledgerTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return auditStore.Insert(ctx, l.tx, e)
}
