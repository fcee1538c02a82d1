package display

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=display
type Repository interface {
	CreateDisplay(ctx context.Context, d *Display, rec audit.Entry) error
	GetDisplay(ctx context.Context, id uuid.UUID) (*Display, error)
	ListDisplays(ctx context.Context, scope access.Scope, filter ListFilter) ([]*Display, error)
	UpdateDisplay(ctx context.Context, id uuid.UUID, mutate func(*Display) error, rec audit.Entry) (*Display, error)
	DeleteDisplay(ctx context.Context, id uuid.UUID, check func(*Display) error, rec audit.Entry) error
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
	FranchiseeID    uuid.UUID
	EstablishmentID *uuid.UUID
	UnitType        string
}

type UpdateParams struct {
	Change
	UnitType *string
}

type ListFilter struct {
	Status          *Status
	FranchiseeID    *uuid.UUID
	EstablishmentID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, actor access.Actor, params CreateParams) (*Display, error) {
	if err := actor.Require("manage displays", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return nil, err
	}

	if actor.Role == access.RoleFranchisee {
		params.FranchiseeID = actor.FranchiseeID
	}

	if params.FranchiseeID == uuid.Nil {
		return nil, apperr.Validation("franchisee id is required")
	}

	unitType := strings.TrimSpace(params.UnitType)
	if unitType == "" {
		return nil, apperr.Validation("unit type is required")
	}

	d := &Display{FranchiseeID: params.FranchiseeID, UnitType: unitType, Status: StatusAvailable}

	if params.EstablishmentID != nil {
		if err := s.checkEstablishment(ctx, *params.EstablishmentID, d.FranchiseeID); err != nil {
			return nil, err
		}

		if err := d.Apply(Change{EstablishmentID: params.EstablishmentID}, s.now()); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateDisplay(ctx, d, audit.Record(actor, "display.create", "display")); err != nil {
		return nil, fmt.Errorf("create display: %w", err)
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*Display, error) {
	d, err := s.repo.GetDisplay(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("display", d.Owner()); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) List(ctx context.Context, actor access.Actor, filter ListFilter) ([]*Display, error) {
	return s.repo.ListDisplays(ctx, actor.Scope().Narrow(filter.FranchiseeID), filter)
}

func (s *Service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, params UpdateParams) (*Display, error) {
	if err := actor.Require("manage displays", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return nil, err
	}

	var est *franchise.Establishment

	if params.EstablishmentID != nil {
		var err error

		est, err = s.establishments.GetEstablishment(ctx, *params.EstablishmentID)
		if err != nil {
			return nil, err
		}
	}

	d, err := s.repo.UpdateDisplay(ctx, id, func(d *Display) error {
		if err := actor.Authorize("display", d.Owner()); err != nil {
			return err
		}

		if est != nil && est.FranchiseeID != d.FranchiseeID {
			return apperr.Validation("establishment %s does not belong to the display's franchisee", est.ID)
		}

		if params.UnitType != nil {
			unitType := strings.TrimSpace(*params.UnitType)
			if unitType == "" {
				return apperr.Validation("unit type is required")
			}

			d.UnitType = unitType
		}

		return d.Apply(params.Change, s.now())
	}, audit.Record(actor, "display.update", "display"))
	if err != nil {
		return nil, fmt.Errorf("update display: %w", err)
	}

	s.logger.Info("display updated",
		zap.String("display_id", d.ID.String()),
		zap.String("status", string(d.Status)),
	)

	return d, nil
}

// Delete removes a display that is back in the warehouse.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if err := actor.Require("manage displays", access.RoleFranchisor, access.RoleFranchisee); err != nil {
		return err
	}

	check := func(d *Display) error {
		if err := actor.Authorize("display", d.Owner()); err != nil {
			return err
		}

		if d.Status != StatusAvailable {
			return apperr.Conflict("display is %s; return it to %s before deleting", d.Status, StatusAvailable)
		}

		return nil
	}

	if err := s.repo.DeleteDisplay(ctx, id, check, audit.Record(actor, "display.delete", "display")); err != nil {
		return fmt.Errorf("delete display: %w", err)
	}

	return nil
}

func (s *Service) checkEstablishment(ctx context.Context, id, franchiseeID uuid.UUID) error {
	est, err := s.establishments.GetEstablishment(ctx, id)
	if err != nil {
		return err
	}

	if est.FranchiseeID != franchiseeID {
		return apperr.Validation("establishment %s does not belong to franchisee %s", est.ID, franchiseeID)
	}

	return nil
}
