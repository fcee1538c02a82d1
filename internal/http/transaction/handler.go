package transaction

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type Handler struct {
	svc    *transaction.Service
	logger *zap.Logger
}

func NewHandler(svc *transaction.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type createTransactionRequest struct {
	Kind            transaction.Kind `json:"kind"`
	Amount          decimal.Decimal  `json:"amount"`
	CardID          string           `json:"card_id"`
	EstablishmentID string           `json:"establishment_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	ReceiptRef      string           `json:"receipt_ref"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	var req createTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	params := transaction.CreateParams{
		Kind:       req.Kind,
		Amount:     req.Amount,
		ReceiptRef: req.ReceiptRef,
	}

	if params.CardID, err = respond.ParseID(req.CardID, "card_id"); err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	if req.EstablishmentID != "" {
		if params.EstablishmentID, err = respond.ParseID(req.EstablishmentID, "establishment_id"); err != nil {
			respond.ServiceError(w, err, h.logger)
			return
		}
	}

	if req.CustomerName != "" || req.CustomerPhone != "" {
		params.Customer = &transaction.Customer{Name: req.CustomerName, Phone: req.CustomerPhone}
	}

	res, err := h.svc.Create(r.Context(), actor, params)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(res.Transaction))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, err := respond.Actor(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	filter, page, err := parseListQuery(r)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.svc.List(r.Context(), actor, filter, page)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toPageResponse(res))
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

	tx, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.ServiceError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(tx))
}

func parseListQuery(r *http.Request) (transaction.ListFilter, transaction.PageRequest, error) {
	var (
		filter transaction.ListFilter
		page   transaction.PageRequest
		err    error
	)

	q := r.URL.Query()

	if s := q.Get("kind"); s != "" {
		filter.Kind = new(transaction.Kind(s))
	}

	if s := q.Get("status"); s != "" {
		filter.Status = new(transaction.Status(s))
	}

	if filter.CardID, err = respond.QueryUUID(r, "card_id"); err != nil {
		return filter, page, err
	}

	if filter.FranchiseeID, err = respond.QueryUUID(r, "franchisee_id"); err != nil {
		return filter, page, err
	}

	if filter.EstablishmentID, err = respond.QueryUUID(r, "establishment_id"); err != nil {
		return filter, page, err
	}

	if filter.StartDate, err = respond.QueryDate(r, "start_date"); err != nil {
		return filter, page, err
	}

	if filter.EndDate, err = respond.QueryDate(r, "end_date"); err != nil {
		return filter, page, err
	}

	if page.Limit, err = queryInt(q.Get("limit")); err != nil {
		return filter, page, apperr.Validation("invalid limit")
	}

	if page.Offset, err = queryInt(q.Get("offset")); err != nil {
		return filter, page, apperr.Validation("invalid offset")
	}

	return filter, page, nil
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}
