// Package idempotency replays the stored response of a POST that carries an
// Idempotency-Key already seen for the same caller and path.
package idempotency

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"

	maxKeyLength = 255
)

// ErrInFlight is returned by Load while the first request holding a key has
// not finished.
var ErrInFlight = errors.New("request with this idempotency key is in progress")

// Record is a completed response kept for replay.
type Record struct {
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type Store interface {
	// Reserve claims key for ttl. It reports false when the key is taken.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Load returns the record saved under key, or ErrInFlight.
	Load(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, key string, rec Record, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// Middleware deduplicates POST requests carrying HeaderKey. The first request
// runs and its response is stored for ttl unless it failed with a 5xx, in
// which case the key is released so the client can retry.
func Middleware(store Store, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if len(key) > maxKeyLength {
				respond.Error(w, http.StatusBadRequest, "idempotency key too long")
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "unreadable request body")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			storeKey := scopedKey(r, key)
			fingerprint := fingerprintOf(body)

			ok, err := store.Reserve(ctx, storeKey, ttl)
			if err != nil {
				logger.Error("idempotency: reserve failed", zap.Error(err))
				respond.Error(w, http.StatusServiceUnavailable, "idempotency store unavailable")

				return
			}

			if !ok {
				replay(w, r, store, storeKey, fingerprint, logger)
				return
			}

			var buf bytes.Buffer

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)

			// The request context may already be cancelled here.
			saveCtx := context.WithoutCancel(ctx)

			defer func() {
				if p := recover(); p != nil {
					if err := store.Release(saveCtx, storeKey); err != nil {
						logger.Warn("idempotency: release failed", zap.Error(err))
					}

					panic(p)
				}
			}()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if status >= http.StatusInternalServerError {
				if err := store.Release(saveCtx, storeKey); err != nil {
					logger.Warn("idempotency: release failed", zap.Error(err))
				}

				return
			}

			rec := Record{
				Fingerprint: fingerprint,
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        buf.Bytes(),
			}

			if err := store.Save(saveCtx, storeKey, rec, ttl); err != nil {
				logger.Warn("idempotency: save failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

func replay(w http.ResponseWriter, r *http.Request, store Store, key, fingerprint string, logger *zap.Logger) {
	rec, err := store.Load(r.Context(), key)
	if errors.Is(err, ErrInFlight) {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}

	if err != nil {
		logger.Error("idempotency: load failed", zap.Error(err))
		respond.Error(w, http.StatusServiceUnavailable, "idempotency store unavailable")

		return
	}

	if rec.Fingerprint != fingerprint {
		respond.Error(w, http.StatusUnprocessableEntity, "idempotency key reused with a different request body")
		return
	}

	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}

	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

// scopedKey namespaces the client key by caller, method and path, so two
// callers cannot collide on the same key.
func scopedKey(r *http.Request, key string) string {
	caller := "anonymous"
	if actor, ok := access.FromContext(r.Context()); ok {
		caller = actor.UserID.String()
	}

	return "idempotency:" + caller + ":" + r.Method + ":" + r.URL.RequestURI() + ":" + key
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
