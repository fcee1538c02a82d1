package cardrequest

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cardrequest
type Repository interface {
	CreateRequest(ctx context.Context, r *CardRequest, rec audit.Entry) error
	GetRequest(ctx context.Context, id uuid.UUID) (*CardRequest, error)
	ListRequests(ctx context.Context, scope access.Scope, filter ListFilter) ([]*CardRequest, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, mutate func(*CardRequest) error, rec audit.Entry) (*CardRequest, error)
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
	EstablishmentID uuid.UUID
	Quantity        int
	Notes           string
}

// UpdateParams carries the fields a caller wants to change; nil means keep.
type UpdateParams struct {
	Status   *Status
	Notes    *string
	Quantity *int
	Dates    Dates
}

func (p UpdateParams) onlyNotes() bool {
	return p.Status == nil && p.Quantity == nil &&
		p.Dates.ApprovedAt == nil && p.Dates.ShippedAt == nil && p.Dates.DeliveredAt == nil
}

type ListFilter struct {
	Status          *Status
	FranchiseeID    *uuid.UUID
	EstablishmentID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, actor access.Actor, params CreateParams) (*CardRequest, error) {
	if actor.Role == access.RoleEstablishment {
		params.EstablishmentID = actor.EstablishmentID
	}

	if params.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive, got %d", params.Quantity)
	}

	if params.EstablishmentID == uuid.Nil {
		return nil, apperr.Validation("establishment id is required")
	}

	est, err := s.establishments.GetEstablishment(ctx, params.EstablishmentID)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("establishment", est.Owner()); err != nil {
		return nil, err
	}

	r := &CardRequest{
		EstablishmentID: est.ID,
		FranchiseeID:    est.FranchiseeID,
		Quantity:        params.Quantity,
		Status:          StatusPending,
		Notes:           strings.TrimSpace(params.Notes),
	}

	if err := s.repo.CreateRequest(ctx, r, audit.Record(actor, "card_request.create", "card_request")); err != nil {
		return nil, fmt.Errorf("create card request: %w", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*CardRequest, error) {
	r, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.Authorize("card request", r.Owner()); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context, actor access.Actor, filter ListFilter) ([]*CardRequest, error) {
	return s.repo.ListRequests(ctx, actor.Scope().Narrow(filter.FranchiseeID), filter)
}

// Update applies params. Establishments may only edit notes.
func (s *Service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, params UpdateParams) (*CardRequest, error) {
	if actor.Role == access.RoleEstablishment && !params.onlyNotes() {
		return nil, apperr.Forbidden("establishments may only edit the notes of a card request")
	}

	if params.Quantity != nil && *params.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive, got %d", *params.Quantity)
	}

	r, err := s.repo.UpdateRequest(ctx, id, func(r *CardRequest) error {
		if err := actor.Authorize("card request", r.Owner()); err != nil {
			return err
		}

		if params.Quantity != nil {
			if r.Status != StatusPending {
				return apperr.Validation("quantity can only change while the request is %s", StatusPending)
			}

			r.Quantity = *params.Quantity
		}

		if params.Notes != nil {
			r.Notes = strings.TrimSpace(*params.Notes)
		}

		return r.Advance(params.Status, params.Dates, s.now())
	}, audit.Record(actor, "card_request.update", "card_request"))
	if err != nil {
		return nil, fmt.Errorf("update card request: %w", err)
	}

	s.logger.Info("card request updated",
		zap.String("request_id", r.ID.String()),
		zap.String("status", string(r.Status)),
	)

	return r, nil
}

// Cancel denies a pending request and notes who cancelled it.
func (s *Service) Cancel(ctx context.Context, actor access.Actor, id uuid.UUID, reason string) (*CardRequest, error) {
	now := s.now()

	r, err := s.repo.UpdateRequest(ctx, id, func(r *CardRequest) error {
		if err := actor.Authorize("card request", r.Owner()); err != nil {
			return err
		}

		if r.Status != StatusPending {
			return apperr.InvalidTransition("card request", r.Status, StatusDenied)
		}

		r.Status = StatusDenied
		r.Notes = appendNote(r.Notes, cancelNote(actor, now, reason))

		return nil
	}, audit.Record(actor, "card_request.cancel", "card_request"))
	if err != nil {
		return nil, fmt.Errorf("cancel card request: %w", err)
	}

	return r, nil
}

func cancelNote(actor access.Actor, at time.Time, reason string) string {
	note := fmt.Sprintf("[%s] cancelled by %s", at.UTC().Format(time.DateTime), actor.Role)
	if reason = strings.TrimSpace(reason); reason != "" {
		note += ": " + reason
	}

	return note
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}

	return notes + "\n" + note
}
