package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=commission
type Repository interface {
	GetCommission(ctx context.Context, id uuid.UUID) (*Commission, error)
	ListCommissions(ctx context.Context, scope access.Scope, filter ListFilter) ([]*Commission, error)
	UpdateCommission(ctx context.Context, id uuid.UUID, mutate func(*Commission) error, rec audit.Entry) (*Commission, error)
}

type ListFilter struct {
	Status          *Status
	FranchiseeID    *uuid.UUID
	EstablishmentID *uuid.UUID
	TransactionID   *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
}

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Commission, error) {
	c, err := s.repo.GetCommission(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("commission", c.Owner()); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, actor access.Actor, filter ListFilter) ([]*Commission, error) {
	return s.repo.ListCommissions(ctx, actor.Scope().Narrow(filter.FranchiseeID), filter)
}

// MarkPaid settles a pending commission.
func (s *Service) MarkPaid(ctx context.Context, actor access.Actor, id uuid.UUID) (*Commission, error) {
	return s.transition(ctx, actor, id, StatusPaid, "commission.pay")
}

func (s *Service) Cancel(ctx context.Context, actor access.Actor, id uuid.UUID) (*Commission, error) {
	return s.transition(ctx, actor, id, StatusCancelled, "commission.cancel")
}

func (s *Service) transition(ctx context.Context, actor access.Actor, id uuid.UUID, to Status, action string) (*Commission, error) {
	if err := actor.Require("settle commissions", access.RoleFranchisor); err != nil {
		return nil, err
	}

	rec := audit.Record(actor, action, "commission")

	c, err := s.repo.UpdateCommission(ctx, id, func(c *Commission) error {
		return c.Transition(to, s.now())
	}, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	s.logger.Info("commission updated",
		zap.String("commission_id", c.ID.String()),
		zap.String("status", string(c.Status)),
	)

	return c, nil
}
