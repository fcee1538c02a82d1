package card

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type Handler struct {
	cards  *card.Service
	ledger *transaction.Service
	logger *zap.Logger
}

func NewHandler(cards *card.Service, ledger *transaction.Service, logger *zap.Logger) *Handler {
	return &Handler{cards: cards, ledger: ledger, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/code/{code}", h.getByCode)
	r.Get("/{id}", h.get)
	r.Post("/{id}", h.action)
	r.Delete("/{id}", h.delete)
}

type createCardRequest struct {
	Code            string     `json:"code"`
	FranchiseeID    uuid.UUID  `json:"franchisee_id"`
	EstablishmentID *uuid.UUID `json:"establishment_id"`
	CustomerID      *uuid.UUID `json:"customer_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createCardRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	c, err := h.cards.Create(r.Context(), actor, card.CreateParams{
		Code:            req.Code,
		FranchiseeID:    req.FranchiseeID,
		EstablishmentID: req.EstablishmentID,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	filter := card.ListFilter{Code: r.URL.Query().Get("code")}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(card.Status(s))
	}

	if filter.FranchiseeID, err = respond.QueryUUID(r, "franchisee_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	if filter.EstablishmentID, err = respond.QueryUUID(r, "establishment_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	cards, err := h.cards.List(r.Context(), actor, filter)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cards))
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

	c, err := h.cards.Get(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) getByCode(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	c, err := h.cards.GetByCode(r.Context(), actor, chi.URLParam(r, "code"))
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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

	if err := h.cards.Delete(r.Context(), actor, id); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ledgerRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	EstablishmentID *uuid.UUID      `json:"establishment_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	ReceiptRef      string          `json:"receipt_ref"`
}

// action handles POST /cards/{id}?action=recharge|use|block|suspend|activate.
func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
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

	var c *card.Card

	switch action := r.URL.Query().Get("action"); action {
	case "recharge", "use":
		h.ledgerAction(w, r, actor, id, action)
		return
	case "block":
		c, err = h.cards.Block(r.Context(), actor, id)
	case "suspend":
		c, err = h.cards.Suspend(r.Context(), actor, id)
	case "activate":
		c, err = h.cards.Activate(r.Context(), actor, id)
	default:
		err = apperr.Validation("unknown card action %q", action)
	}

	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) ledgerAction(w http.ResponseWriter, r *http.Request, actor access.Actor, id uuid.UUID, action string) {
	var req ledgerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var establishmentID uuid.UUID
	if req.EstablishmentID != nil {
		establishmentID = *req.EstablishmentID
	}

	var (
		res *transaction.Result
		err error
	)

	if action == "recharge" {
		res, err = h.ledger.Recharge(r.Context(), actor, transaction.RechargeParams{
			CardID:          id,
			EstablishmentID: establishmentID,
			Amount:          req.Amount,
			ReceiptRef:      req.ReceiptRef,
		})
	} else {
		params := transaction.UseParams{
			CardID:          id,
			EstablishmentID: establishmentID,
			Amount:          req.Amount,
			ReceiptRef:      req.ReceiptRef,
		}

		if req.CustomerName != "" || req.CustomerPhone != "" {
			params.Customer = &transaction.Customer{Name: req.CustomerName, Phone: req.CustomerPhone}
		}

		res, err = h.ledger.Use(r.Context(), actor, params)
	}

	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	resp := toResponse(res.Card)
	resp.Transaction = toLedgerEntry(res.Transaction)

	respond.JSON(w, http.StatusOK, resp)
}
