package commission

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

type Handler struct {
	svc    *commission.Service
	logger *zap.Logger
}

func NewHandler(svc *commission.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/pay", h.transition(h.svc.MarkPaid))
	r.Post("/{id}/cancel", h.transition(h.svc.Cancel))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var filter commission.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(commission.Status(s))
	}

	for name, dst := range map[string]**uuid.UUID{
		"franchisee_id":    &filter.FranchiseeID,
		"establishment_id": &filter.EstablishmentID,
		"transaction_id":   &filter.TransactionID,
	} {
		if *dst, err = respond.QueryUUID(r, name); err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}
	}

	for name, dst := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		if *dst, err = respond.QueryDate(r, name); err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}
	}

	commissions, err := h.svc.List(r.Context(), actor, filter)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]commissionResponse, len(commissions))
	for i, c := range commissions {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	c, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type transitionFunc func(ctx context.Context, actor access.Actor, id uuid.UUID) (*commission.Commission, error)

func (h *Handler) transition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := respond.Actor(r)
		if err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}

		id, err := respond.IDParam(r, "id")
		if err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}

		c, err := fn(r.Context(), actor, id)
		if err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}

		respond.JSON(w, http.StatusOK, toResponse(c))
	}
}

type commissionResponse struct {
	ID              uuid.UUID         `json:"id"`
	Amount          string            `json:"amount"`
	Percentage      string            `json:"percentage"`
	Status          commission.Status `json:"status"`
	FranchiseeID    uuid.UUID         `json:"franchisee_id"`
	EstablishmentID uuid.UUID         `json:"establishment_id"`
	TransactionID   uuid.UUID         `json:"transaction_id"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(c *commission.Commission) commissionResponse {
	return commissionResponse{
		ID:              c.ID,
		Amount:          c.Amount.StringFixed(2),
		Percentage:      c.Percentage.StringFixed(2),
		Status:          c.Status,
		FranchiseeID:    c.FranchiseeID,
		EstablishmentID: c.EstablishmentID,
		TransactionID:   c.TransactionID,
		PaidAt:          c.PaidAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
