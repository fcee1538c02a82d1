package card

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=card
type Repository interface {
	CreateCard(ctx context.Context, c *Card, rec audit.Entry) error
	GetCard(ctx context.Context, id uuid.UUID) (*Card, error)
	GetCardByCode(ctx context.Context, code string) (*Card, error)
	ListCards(ctx context.Context, scope access.Scope, filter ListFilter) ([]*Card, error)
	UpdateCard(ctx context.Context, id uuid.UUID, mutate func(*Card) error, rec audit.Entry) (*Card, error)
	DeleteCard(ctx context.Context, id uuid.UUID, check func(*Card) error, rec audit.Entry) error
}

type EstablishmentFinder interface {
	GetEstablishment(ctx context.Context, id uuid.UUID) (*franchise.Establishment, error)
}

type Service struct {
	repo           Repository
	establishments EstablishmentFinder
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(repo Repository, establishments EstablishmentFinder, logger *zap.Logger) *Service {
	return &Service{repo: repo, establishments: establishments, logger: logger, now: time.Now}
}

type CreateParams struct {
	Code            string
	FranchiseeID    uuid.UUID
	EstablishmentID *uuid.UUID
	CustomerID      *uuid.UUID
}

type ListFilter struct {
	Status          *Status
	FranchiseeID    *uuid.UUID
	EstablishmentID *uuid.UUID
	Code            string
}

// Create issues an empty AVAILABLE card. A blank code is generated.
func (s *Service) Create(ctx context.Context, actor access.Actor, params CreateParams) (*Card, error) {
	if err := actor.Require("issue cards", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return nil, err
	}

	if actor.Role == access.RoleFranchisee {
		params.FranchiseeID = actor.FranchiseeID
	}

	if params.FranchiseeID == uuid.Nil {
		return nil, apperr.Validation("franchisee id is required")
	}

	if params.EstablishmentID != nil {
		est, err := s.establishments.GetEstablishment(ctx, *params.EstablishmentID)
		if err != nil {
			return nil, err
		}

		if est.FranchiseeID != params.FranchiseeID {
			return nil, apperr.Validation("establishment %s does not belong to franchisee %s", est.ID, params.FranchiseeID)
		}
	}

	code := strings.ToUpper(strings.TrimSpace(params.Code))
	if code == "" {
		code = newCode()
	}

	c := &Card{
		Code:            code,
		Status:          StatusAvailable,
		FranchiseeID:    params.FranchiseeID,
		EstablishmentID: params.EstablishmentID,
		CustomerID:      params.CustomerID,
	}

	if err := s.repo.CreateCard(ctx, c, audit.Record(actor, "card.create", "card")); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Card, error) {
	c, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("card", c.Owner()); err != nil {
		return nil, err
	}

	return c, nil
}

// GetByCode resolves the card a customer presents at a terminal. The code is
// a bearer credential, so establishments may resolve any card of their
// franchisee.
func (s *Service) GetByCode(ctx context.Context, actor access.Actor, code string) (*Card, error) {
	c, err := s.repo.GetCardByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	owner := c.Owner()
	if actor.Role == access.RoleEstablishment && c.FranchiseeID == actor.FranchiseeID {
		owner.EstablishmentID = &actor.EstablishmentID
	}

	if err := actor.Authorize("card", owner); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, actor access.Actor, filter ListFilter) ([]*Card, error) {
	return s.repo.ListCards(ctx, actor.Scope().Narrow(filter.FranchiseeID), filter)
}

// Delete removes a card that never carried a transaction.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if err := actor.Require("delete cards", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return err
	}

	check := func(c *Card) error {
		return actor.Authorize("card", c.Owner())
	}

	if err := s.repo.DeleteCard(ctx, id, check, audit.Record(actor, "card.delete", "card")); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	return nil
}

// Block expires the card.
func (s *Service) Block(ctx context.Context, actor access.Actor, id uuid.UUID) (*Card, error) {
	return s.apply(ctx, actor, id, EventBlock)
}

// Suspend moves the card to BLOCKED until it is activated again.
func (s *Service) Suspend(ctx context.Context, actor access.Actor, id uuid.UUID) (*Card, error) {
	return s.apply(ctx, actor, id, EventSuspend)
}

func (s *Service) Activate(ctx context.Context, actor access.Actor, id uuid.UUID) (*Card, error) {
	return s.apply(ctx, actor, id, EventActivate)
}

func (s *Service) apply(ctx context.Context, actor access.Actor, id uuid.UUID, e Event) (*Card, error) {
	if err := actor.Require(string(e)+" cards", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateCard(ctx, id, func(c *Card) error {
		if err := actor.Authorize("card", c.Owner()); err != nil {
			return err
		}

		return c.Apply(e, s.now())
	}, audit.Record(actor, "card."+string(e), "card"))
	if err != nil {
		return nil, fmt.Errorf("%s card: %w", e, err)
	}

	s.logger.Info("card status changed",
		zap.String("card_id", c.ID.String()),
		zap.String("event", string(e)),
		zap.String("status", string(c.Status)),
	)

	return c, nil
}

func newCode() string {
	return "CRD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
