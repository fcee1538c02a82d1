package cardrequest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/cardrequest"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

type Handler struct {
	svc    *cardrequest.Service
	logger *zap.Logger
}

func NewHandler(svc *cardrequest.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.cancel)
}

type createRequest struct {
	EstablishmentID uuid.UUID `json:"establishment_id"`
	Quantity        int       `json:"quantity"`
	Notes           string    `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	cr, err := h.svc.Create(r.Context(), actor, cardrequest.CreateParams{
		EstablishmentID: req.EstablishmentID,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(cr))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var filter cardrequest.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(cardrequest.Status(s))
	}

	if filter.FranchiseeID, err = respond.QueryUUID(r, "franchisee_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	if filter.EstablishmentID, err = respond.QueryUUID(r, "establishment_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	requests, err := h.svc.List(r.Context(), actor, filter)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]requestResponse, len(requests))
	for i, cr := range requests {
		resp[i] = toResponse(cr)
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

	cr, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(cr))
}

type updateRequest struct {
	Status      *cardrequest.Status `json:"status,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Quantity    *int                `json:"quantity,omitempty"`
	ApprovedAt  *time.Time          `json:"approved_at,omitempty"`
	ShippedAt   *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time          `json:"delivered_at,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
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

	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	cr, err := h.svc.Update(r.Context(), actor, id, cardrequest.UpdateParams{
		Status:   req.Status,
		Notes:    req.Notes,
		Quantity: req.Quantity,
		Dates: cardrequest.Dates{
			ApprovedAt:  req.ApprovedAt,
			ShippedAt:   req.ShippedAt,
			DeliveredAt: req.DeliveredAt,
		},
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(cr))
}

// cancel handles DELETE /requests/{id}; the optional reason query parameter
// is appended to the request notes.
func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
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

	cr, err := h.svc.Cancel(r.Context(), actor, id, r.URL.Query().Get("reason"))
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(cr))
}

type requestResponse struct {
	ID              uuid.UUID          `json:"id"`
	EstablishmentID uuid.UUID          `json:"establishment_id"`
	FranchiseeID    uuid.UUID          `json:"franchisee_id"`
	Quantity        int                `json:"quantity"`
	Status          cardrequest.Status `json:"status"`
	Notes           string             `json:"notes,omitempty"`
	ApprovedAt      *time.Time         `json:"approved_at,omitempty"`
	ShippedAt       *time.Time         `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(cr *cardrequest.CardRequest) requestResponse {
	return requestResponse{
		ID:              cr.ID,
		EstablishmentID: cr.EstablishmentID,
		FranchiseeID:    cr.FranchiseeID,
		Quantity:        cr.Quantity,
		Status:          cr.Status,
		Notes:           cr.Notes,
		ApprovedAt:      cr.ApprovedAt,
		ShippedAt:       cr.ShippedAt,
		DeliveredAt:     cr.DeliveredAt,
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.UpdatedAt,
	}
}
