package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/auth"
	"github.com/MrJamesThe3rd/cardly/internal/http/card"
	"github.com/MrJamesThe3rd/cardly/internal/http/cardrequest"
	"github.com/MrJamesThe3rd/cardly/internal/http/commission"
	"github.com/MrJamesThe3rd/cardly/internal/http/display"
	"github.com/MrJamesThe3rd/cardly/internal/http/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
	"github.com/MrJamesThe3rd/cardly/internal/http/transaction"
	"github.com/MrJamesThe3rd/cardly/internal/idempotency"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options carries the cross-cutting dependencies of the router. A nil
// Idempotency store disables replay protection.
type Options struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Verifier       *auth.Verifier
	DB             Pinger
	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration
	AllowedOrigins []string
}

type Handlers struct {
	Cards        *card.Handler
	Transactions *transaction.Handler
	Commissions  *commission.Handler
	Requests     *cardrequest.Handler
	Displays     *display.Handler
	Franchise    *franchise.Handler
}

func New(opts Options, v1 Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(observability.ZapLoggerMiddleware(opts.Logger, opts.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", idempotency.HeaderKey},
		ExposedHeaders: []string{idempotency.HeaderReplayed},
		MaxAge:         300,
	}))

	router.Get("/healthz", health(opts.DB))

	if opts.Metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	replayable := func(next http.Handler) http.Handler { return next }
	if opts.Idempotency != nil {
		replayable = idempotency.Middleware(opts.Idempotency, opts.IdempotencyTTL, opts.Logger)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.Verifier, opts.Logger))
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/cards", func(r chi.Router) {
			r.Use(replayable)
			v1.Cards.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(replayable)
			v1.Transactions.Routes(r)
		})

		r.Route("/commissions", v1.Commissions.Routes)
		r.Route("/requests", v1.Requests.Routes)
		r.Route("/displays", v1.Displays.Routes)
		r.Route("/franchisees", v1.Franchise.FranchiseeRoutes)
		r.Route("/establishments", v1.Franchise.EstablishmentRoutes)
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				respond.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}

		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
