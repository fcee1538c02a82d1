package franchise

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

type Handler struct {
	svc    *franchise.Service
	logger *zap.Logger
}

func NewHandler(svc *franchise.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) FranchiseeRoutes(r chi.Router) {
	r.Post("/", h.createFranchisee)
	r.Get("/", h.listFranchisees)
	r.Get("/{id}", h.getFranchisee)
	r.Put("/{id}/commission-rate", h.updateCommissionRate)
}

func (h *Handler) EstablishmentRoutes(r chi.Router) {
	r.Post("/", h.createEstablishment)
	r.Get("/", h.listEstablishments)
	r.Get("/{id}", h.getEstablishment)
}

type createFranchiseeRequest struct {
	Name           string          `json:"name"`
	Document       string          `json:"document"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (h *Handler) createFranchisee(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createFranchiseeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	f, err := h.svc.CreateFranchisee(r.Context(), actor, franchise.CreateFranchiseeParams{
		Name:           req.Name,
		Document:       req.Document,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, toFranchiseeResponse(f))
}

func (h *Handler) listFranchisees(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	franchisees, err := h.svc.ListFranchisees(r.Context(), actor)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]franchiseeResponse, len(franchisees))
	for i, f := range franchisees {
		resp[i] = toFranchiseeResponse(f)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getFranchisee(w http.ResponseWriter, r *http.Request) {
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

	f, err := h.svc.GetFranchisee(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toFranchiseeResponse(f))
}

type commissionRateRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (h *Handler) updateCommissionRate(w http.ResponseWriter, r *http.Request) {
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

	var req commissionRateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	f, err := h.svc.UpdateCommissionRate(r.Context(), actor, id, req.CommissionRate)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toFranchiseeResponse(f))
}

type createEstablishmentRequest struct {
	FranchiseeID uuid.UUID `json:"franchisee_id"`
	Name         string    `json:"name"`
	Document     string    `json:"document"`
}

func (h *Handler) createEstablishment(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createEstablishmentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	e, err := h.svc.CreateEstablishment(r.Context(), actor, franchise.CreateEstablishmentParams{
		FranchiseeID: req.FranchiseeID,
		Name:         req.Name,
		Document:     req.Document,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, toEstablishmentResponse(e))
}

func (h *Handler) listEstablishments(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	franchiseeID, err := respond.QueryUUID(r, "franchisee_id")
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	establishments, err := h.svc.ListEstablishments(r.Context(), actor, franchiseeID)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]establishmentResponse, len(establishments))
	for i, e := range establishments {
		resp[i] = toEstablishmentResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getEstablishment(w http.ResponseWriter, r *http.Request) {
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

	e, err := h.svc.GetEstablishment(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toEstablishmentResponse(e))
}
