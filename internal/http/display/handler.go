package display

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/display"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

type Handler struct {
	svc    *display.Service
	logger *zap.Logger
}

func NewHandler(svc *display.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createDisplayRequest struct {
	FranchiseeID    uuid.UUID  `json:"franchisee_id"`
	EstablishmentID *uuid.UUID `json:"establishment_id"`
	UnitType        string     `json:"unit_type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createDisplayRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	d, err := h.svc.Create(r.Context(), actor, display.CreateParams{
		FranchiseeID:    req.FranchiseeID,
		EstablishmentID: req.EstablishmentID,
		UnitType:        req.UnitType,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var filter display.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(display.Status(s))
	}

	if filter.FranchiseeID, err = respond.QueryUUID(r, "franchisee_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	if filter.EstablishmentID, err = respond.QueryUUID(r, "establishment_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	displays, err := h.svc.List(r.Context(), actor, filter)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]displayResponse, len(displays))
	for i, d := range displays {
		resp[i] = toResponse(d)
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

	d, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

// binding distinguishes an absent establishment_id from an explicit null,
// which unbinds the display.
type binding struct {
	set bool
	id  *uuid.UUID
}

func (b *binding) UnmarshalJSON(data []byte) error {
	b.set = true
	return json.Unmarshal(data, &b.id)
}

type updateDisplayRequest struct {
	Status          *display.Status `json:"status,omitempty"`
	UnitType        *string         `json:"unit_type,omitempty"`
	EstablishmentID binding         `json:"establishment_id"`
	InstalledAt     *time.Time      `json:"installed_at,omitempty"`
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

	var req updateDisplayRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	d, err := h.svc.Update(r.Context(), actor, id, display.UpdateParams{
		Change: display.Change{
			Status:             req.Status,
			EstablishmentID:    req.EstablishmentID.id,
			ClearEstablishment: req.EstablishmentID.set && req.EstablishmentID.id == nil,
			InstalledAt:        req.InstalledAt,
		},
		UnitType: req.UnitType,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type displayResponse struct {
	ID              uuid.UUID      `json:"id"`
	FranchiseeID    uuid.UUID      `json:"franchisee_id"`
	EstablishmentID *uuid.UUID     `json:"establishment_id,omitempty"`
	UnitType        string         `json:"unit_type"`
	Status          display.Status `json:"status"`
	InstalledAt     *time.Time     `json:"installed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

func toResponse(d *display.Display) displayResponse {
	return displayResponse{
		ID:              d.ID,
		FranchiseeID:    d.FranchiseeID,
		EstablishmentID: d.EstablishmentID,
		UnitType:        d.UnitType,
		Status:          d.Status,
		InstalledAt:     d.InstalledAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
