package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
)

var tracer = otel.Tracer("cardly/transaction")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, scope access.Scope, filter ListFilter, page PageRequest) ([]*Transaction, error)
	SummarizeTransactions(ctx context.Context, scope access.Scope, filter ListFilter) ([]StatusTotal, error)

	BeginLedger(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is the unit of work of one balance mutation. Everything written
// through it becomes visible on Commit or not at all.
type LedgerTx interface {
	LockCard(ctx context.Context, id uuid.UUID) (*card.Card, error)
	GetEstablishment(ctx context.Context, id uuid.UUID) (*franchise.Establishment, error)
	CommissionRate(ctx context.Context, franchiseeID uuid.UUID) (decimal.Decimal, error)
	SaveCard(ctx context.Context, c *card.Card) error
	CreateTransaction(ctx context.Context, t *Transaction) error
	CreateCommission(ctx context.Context, c *commission.Commission) error
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo    Repository
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, metrics *observability.Metrics, logger *zap.Logger) *Service {
	return &Service{repo: repo, metrics: metrics, logger: logger, now: time.Now}
}

type RechargeParams struct {
	CardID          uuid.UUID
	EstablishmentID uuid.UUID
	Amount          decimal.Decimal
	ReceiptRef      string
}

type UseParams struct {
	CardID          uuid.UUID
	EstablishmentID uuid.UUID
	Amount          decimal.Decimal
	Customer        *Customer
	ReceiptRef      string
}

type CreateParams struct {
	Kind            Kind
	CardID          uuid.UUID
	EstablishmentID uuid.UUID
	Amount          decimal.Decimal
	Customer        *Customer
	ReceiptRef      string
}

// Result is the state a ledger operation committed.
type Result struct {
	Card        *card.Card
	Transaction *Transaction
}

type ListFilter struct {
	Kind            *Kind
	Status          *Status
	CardID          *uuid.UUID
	FranchiseeID    *uuid.UUID
	EstablishmentID *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type PageRequest struct {
	Limit  int
	Offset int
}

func (p PageRequest) normalize() PageRequest {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}

	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}

	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

type Page struct {
	Items   []*Transaction
	Total   int
	Limit   int
	Offset  int
	Summary *Summary
}

// Recharge adds amount to the card's balance and activates it.
func (s *Service) Recharge(ctx context.Context, actor access.Actor, params RechargeParams) (*Result, error) {
	return s.execute(ctx, actor, CreateParams{
		Kind:            KindRecharge,
		CardID:          params.CardID,
		EstablishmentID: params.EstablishmentID,
		Amount:          params.Amount,
		ReceiptRef:      params.ReceiptRef,
	})
}

// Use debits amount from the card and credits the franchisee a commission.
func (s *Service) Use(ctx context.Context, actor access.Actor, params UseParams) (*Result, error) {
	return s.execute(ctx, actor, CreateParams{
		Kind:            KindUsage,
		CardID:          params.CardID,
		EstablishmentID: params.EstablishmentID,
		Amount:          params.Amount,
		Customer:        params.Customer,
		ReceiptRef:      params.ReceiptRef,
	})
}

// Create dispatches on params.Kind.
func (s *Service) Create(ctx context.Context, actor access.Actor, params CreateParams) (*Result, error) {
	switch params.Kind {
	case KindRecharge, KindUsage:
		return s.execute(ctx, actor, params)
	}

	return nil, apperr.Validation("unknown transaction kind %q", params.Kind)
}

func (s *Service) execute(ctx context.Context, actor access.Actor, params CreateParams) (res *Result, err error) {
	operation := "recharge"
	if params.Kind == KindUsage {
		operation = "use"
	}

	ctx, span := tracer.Start(ctx, "transaction."+operation, trace.WithAttributes(
		attribute.String("card_id", params.CardID.String()),
		attribute.String("amount", params.Amount.String()),
	))
	defer span.End()

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(apperr.KindOf(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		s.metrics.RecordLedgerOperation(operation, outcome)
	}()

	if err := ValidateAmount(params.Amount); err != nil {
		return nil, err
	}

	if actor.Role == access.RoleEstablishment {
		params.EstablishmentID = actor.EstablishmentID
	}

	if params.EstablishmentID == uuid.Nil {
		return nil, apperr.Validation("establishment id is required")
	}

	ltx, err := s.repo.BeginLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger: %w", err)
	}
	defer ltx.Rollback()

	est, err := ltx.GetEstablishment(ctx, params.EstablishmentID)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("establishment", est.Owner()); err != nil {
		return nil, err
	}

	c, err := ltx.LockCard(ctx, params.CardID)
	if err != nil {
		return nil, err
	}

	if c.FranchiseeID != est.FranchiseeID {
		return nil, apperr.Forbidden("card %s is not accepted by establishment %s", c.Code, est.ID)
	}

	before := *c
	now := s.now()

	if params.Kind == KindUsage {
		err = c.Debit(params.Amount, now)
	} else {
		err = c.Credit(params.Amount, now)
	}

	if err != nil {
		return nil, err
	}

	if err := ltx.SaveCard(ctx, c); err != nil {
		return nil, fmt.Errorf("save card: %w", err)
	}

	tx := &Transaction{
		Kind:            params.Kind,
		Amount:          params.Amount,
		Status:          StatusCompleted,
		CardID:          c.ID,
		EstablishmentID: est.ID,
		FranchiseeID:    est.FranchiseeID,
		ReceiptRef:      params.ReceiptRef,
	}

	if params.Customer != nil {
		tx.CustomerName = params.Customer.Name
		tx.CustomerPhone = params.Customer.Phone
	}

	if err := ltx.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if params.Kind == KindUsage {
		rate, err := ltx.CommissionRate(ctx, est.FranchiseeID)
		if err != nil {
			return nil, fmt.Errorf("read commission rate: %w", err)
		}

		cm := commission.New(tx.ID, est.FranchiseeID, est.ID, params.Amount, rate)
		if err := ltx.CreateCommission(ctx, cm); err != nil {
			return nil, fmt.Errorf("create commission: %w", err)
		}

		tx.Commission = cm
	}

	rec := audit.Record(actor, "card."+operation, "card")
	rec.EntityID = c.ID
	rec.Before = before
	rec.After = c

	if err := ltx.RecordAudit(ctx, rec); err != nil {
		return nil, fmt.Errorf("record audit: %w", err)
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger: %w", err)
	}

	amount, _ := params.Amount.Float64()
	s.metrics.AddLedgerVolume(string(params.Kind), amount)

	if tx.Commission != nil {
		s.metrics.IncrCommission()
	}

	s.logger.Info("ledger operation committed",
		zap.String("operation", operation),
		zap.String("card_id", c.ID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("amount", params.Amount.StringFixed(2)),
		zap.String("balance", c.Balance.StringFixed(2)),
		zap.String("status", string(c.Status)),
	)

	return &Result{Card: c, Transaction: tx}, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("transaction", tx.Owner()); err != nil {
		return nil, err
	}

	return tx, nil
}

// List reads one page and the summary of everything filter matches. The two
// queries run concurrently and may observe slightly different snapshots.
func (s *Service) List(ctx context.Context, actor access.Actor, filter ListFilter, page PageRequest) (*Page, error) {
	page = page.normalize()
	scope := actor.Scope().Narrow(filter.FranchiseeID)

	var (
		items  []*Transaction
		totals []StatusTotal
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		items, err = s.repo.ListTransactions(gctx, scope, filter, page)

		return err
	})

	g.Go(func() error {
		var err error

		totals, err = s.repo.SummarizeTransactions(gctx, scope, filter)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	summary := NewSummary(totals)

	return &Page{
		Items:   items,
		Total:   summary.Count,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Summary: summary,
	}, nil
}
