package franchise

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/gateway"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=franchise
type Repository interface {
	CreateFranchisee(ctx context.Context, f *Franchisee, rec audit.Entry) error
	GetFranchisee(ctx context.Context, id uuid.UUID) (*Franchisee, error)
	ListFranchisees(ctx context.Context, scope access.Scope) ([]*Franchisee, error)
	UpdateFranchisee(ctx context.Context, id uuid.UUID, mutate func(*Franchisee) error, rec audit.Entry) (*Franchisee, error)
	SetFranchiseeLinkage(ctx context.Context, id uuid.UUID, l gateway.Linkage) error

	CreateEstablishment(ctx context.Context, e *Establishment, rec audit.Entry) error
	GetEstablishment(ctx context.Context, id uuid.UUID) (*Establishment, error)
	ListEstablishments(ctx context.Context, scope access.Scope) ([]*Establishment, error)
	SetEstablishmentLinkage(ctx context.Context, id uuid.UUID, l gateway.Linkage) error
}

// Linker creates the gateway-side customer of a new record.
type Linker interface {
	Link(ctx context.Context, c gateway.Customer) gateway.Linkage
}

type Service struct {
	repo   Repository
	linker Linker
	logger *zap.Logger
}

func NewService(repo Repository, linker Linker, logger *zap.Logger) *Service {
	return &Service{repo: repo, linker: linker, logger: logger}
}

type CreateFranchiseeParams struct {
	Name           string
	Document       string
	CommissionRate decimal.Decimal
}

func (s *Service) CreateFranchisee(ctx context.Context, actor access.Actor, params CreateFranchiseeParams) (*Franchisee, error) {
	if err := actor.Require("create franchisees", access.RoleFranchisor); err != nil {
		return nil, err
	}

	if err := validateParty(params.Name, params.Document); err != nil {
		return nil, err
	}

	if err := ValidateRate(params.CommissionRate); err != nil {
		return nil, err
	}

	f := &Franchisee{
		FranchisorID:   actor.FranchisorID,
		Name:           strings.TrimSpace(params.Name),
		Document:       strings.TrimSpace(params.Document),
		CommissionRate: params.CommissionRate,
		Linkage:        gateway.Unlinked(),
	}

	if err := s.repo.CreateFranchisee(ctx, f, audit.Record(actor, "franchisee.create", "franchisee")); err != nil {
		return nil, fmt.Errorf("create franchisee: %w", err)
	}

	f.Linkage = s.linker.Link(ctx, f.Customer())
	if err := s.repo.SetFranchiseeLinkage(ctx, f.ID, f.Linkage); err != nil {
		s.logger.Warn("failed to persist gateway linkage",
			zap.String("franchisee_id", f.ID.String()),
			zap.Error(err),
		)
	}

	return f, nil
}

func (s *Service) GetFranchisee(ctx context.Context, actor access.Actor, id uuid.UUID) (*Franchisee, error) {
	f, err := s.repo.GetFranchisee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("franchisee", f.Owner()); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) ListFranchisees(ctx context.Context, actor access.Actor) ([]*Franchisee, error) {
	return s.repo.ListFranchisees(ctx, actor.Scope())
}

// UpdateCommissionRate changes the rate applied to future usages only.
func (s *Service) UpdateCommissionRate(ctx context.Context, actor access.Actor, id uuid.UUID, rate decimal.Decimal) (*Franchisee, error) {
	if err := actor.Require("change commission rates", access.RoleFranchisor); err != nil {
		return nil, err
	}

	if err := ValidateRate(rate); err != nil {
		return nil, err
	}

	f, err := s.repo.UpdateFranchisee(ctx, id, func(f *Franchisee) error {
		f.CommissionRate = rate
		return nil
	}, audit.Record(actor, "franchisee.commission_rate", "franchisee"))
	if err != nil {
		return nil, fmt.Errorf("update commission rate: %w", err)
	}

	s.logger.Info("commission rate updated",
		zap.String("franchisee_id", f.ID.String()),
		zap.String("rate", rate.String()),
	)

	return f, nil
}

type CreateEstablishmentParams struct {
	FranchiseeID uuid.UUID
	Name         string
	Document     string
}

func (s *Service) CreateEstablishment(ctx context.Context, actor access.Actor, params CreateEstablishmentParams) (*Establishment, error) {
	if err := actor.Require("create establishments", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return nil, err
	}

	if actor.Role == access.RoleFranchisee {
		params.FranchiseeID = actor.FranchiseeID
	}

	if params.FranchiseeID == uuid.Nil {
		return nil, apperr.Validation("franchisee id is required")
	}

	if err := validateParty(params.Name, params.Document); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetFranchisee(ctx, params.FranchiseeID); err != nil {
		return nil, err
	}

	e := &Establishment{
		FranchiseeID: params.FranchiseeID,
		Name:         strings.TrimSpace(params.Name),
		Document:     strings.TrimSpace(params.Document),
		Linkage:      gateway.Unlinked(),
	}

	if err := s.repo.CreateEstablishment(ctx, e, audit.Record(actor, "establishment.create", "establishment")); err != nil {
		return nil, fmt.Errorf("create establishment: %w", err)
	}

	e.Linkage = s.linker.Link(ctx, e.Customer())
	if err := s.repo.SetEstablishmentLinkage(ctx, e.ID, e.Linkage); err != nil {
		s.logger.Warn("failed to persist gateway linkage",
			zap.String("establishment_id", e.ID.String()),
			zap.Error(err),
		)
	}

	return e, nil
}

func (s *Service) GetEstablishment(ctx context.Context, actor access.Actor, id uuid.UUID) (*Establishment, error) {
	e, err := s.repo.GetEstablishment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("establishment", e.Owner()); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) ListEstablishments(ctx context.Context, actor access.Actor, franchiseeID *uuid.UUID) ([]*Establishment, error) {
	return s.repo.ListEstablishments(ctx, actor.Scope().Narrow(franchiseeID))
}
