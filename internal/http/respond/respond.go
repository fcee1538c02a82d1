// Package respond holds the JSON encoding and error mapping shared by every
// HTTP handler.
package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type errorResponse struct {
	Error string      `json:"error"`
	Kind  apperr.Kind `json:"kind,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindInvalidTransition, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// ServiceError writes err with the status of its kind. Internal errors are
// logged in full and answered with a generic message.
func ServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	kind := apperr.KindOf(err)
	status := StatusOf(kind)

	switch kind {
	case apperr.KindInternal:
		logger.Error("unhandled error", zap.Error(err))
		JSON(w, status, errorResponse{Error: "internal server error", Kind: kind})

		return
	case apperr.KindForbidden, apperr.KindInsufficientBalance:
		logger.Warn(string(kind), zap.String("error", err.Error()))
	default:
		logger.Debug(string(kind), zap.String("error", err.Error()))
	}

	JSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}

	return nil
}

func Actor(r *http.Request) (access.Actor, error) {
	actor, ok := access.FromContext(r.Context())
	if !ok {
		return access.Actor{}, apperr.Forbidden("request carries no actor")
	}

	return actor, nil
}

// IDParam parses the chi URL parameter name as a uuid.
func IDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}

	return id, nil
}

// ParseID parses a uuid taken from a request body field called name.
func ParseID(s, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}

	return id, nil
}

// QueryUUID parses an optional uuid query parameter.
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperr.Validation("invalid %s", name)
	}

	return &id, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, apperr.Validation("invalid %s: expected YYYY-MM-DD", name)
	}

	return &t, nil
}
