package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/auth"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	cardStore "github.com/MrJamesThe3rd/cardly/internal/card/store"
	"github.com/MrJamesThe3rd/cardly/internal/cardrequest"
	requestStore "github.com/MrJamesThe3rd/cardly/internal/cardrequest/store"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	commissionStore "github.com/MrJamesThe3rd/cardly/internal/commission/store"
	"github.com/MrJamesThe3rd/cardly/internal/config"
	"github.com/MrJamesThe3rd/cardly/internal/database"
	"github.com/MrJamesThe3rd/cardly/internal/display"
	displayStore "github.com/MrJamesThe3rd/cardly/internal/display/store"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	franchiseStore "github.com/MrJamesThe3rd/cardly/internal/franchise/store"
	"github.com/MrJamesThe3rd/cardly/internal/gateway"
	cardlyHttp "github.com/MrJamesThe3rd/cardly/internal/http"
	cardHandler "github.com/MrJamesThe3rd/cardly/internal/http/card"
	requestHandler "github.com/MrJamesThe3rd/cardly/internal/http/cardrequest"
	commissionHandler "github.com/MrJamesThe3rd/cardly/internal/http/commission"
	displayHandler "github.com/MrJamesThe3rd/cardly/internal/http/display"
	franchiseHandler "github.com/MrJamesThe3rd/cardly/internal/http/franchise"
	txHandler "github.com/MrJamesThe3rd/cardly/internal/http/transaction"
	"github.com/MrJamesThe3rd/cardly/internal/idempotency"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
	"github.com/MrJamesThe3rd/cardly/internal/resilience"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
	txStore "github.com/MrJamesThe3rd/cardly/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.App.Port),
		zap.String("log_level", cfg.App.LogLevel),
		zap.String("db_host", cfg.DB.Host),
		zap.Bool("idempotency", cfg.Redis.Addr != ""),
		zap.Bool("gateway", cfg.Gateway.URL != ""),
		zap.Bool("tracing", cfg.Telemetry.OTLPEndpoint != ""),
	)

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), cfg.Telemetry.OTLPEndpoint, cfg.App.Name)
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	metrics := observability.NewMetrics()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	var idem idempotency.Store

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}

		idem = idempotency.NewRedisStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set: idempotency keys are ignored")
	}

	var gatewayClient gateway.Client

	if cfg.Gateway.URL != "" {
		gatewayClient = gateway.NewHTTPClient(
			&http.Client{Timeout: cfg.Gateway.Timeout},
			cfg.Gateway.URL,
			cfg.Gateway.APIKey,
			resilience.NewCircuitBreaker("payment-gateway"),
			resilience.Config{MaxRetries: cfg.Gateway.MaxRetries, InitialBackoff: cfg.Gateway.InitialBackoff},
		)
	} else {
		logger.Warn("GATEWAY_URL not set: franchise records stay unlinked")
	}

	franchiseRepo := franchiseStore.New(db)

	var (
		linker             = gateway.NewLinker(gatewayClient, cfg.Gateway.Timeout, metrics, logger)
		franchiseService   = franchise.NewService(franchiseRepo, linker, logger)
		cardService        = card.NewService(cardStore.New(db), franchiseRepo, logger)
		transactionService = transaction.NewService(txStore.New(db), metrics, logger)
		commissionService  = commission.NewService(commissionStore.New(db), logger)
		requestService     = cardrequest.NewService(requestStore.New(db), franchiseRepo, logger)
		displayService     = display.NewService(displayStore.New(db), franchiseRepo, logger)
	)

	router := cardlyHttp.New(cardlyHttp.Options{
		Logger:         logger,
		Metrics:        metrics,
		Verifier:       auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer),
		DB:             db,
		Idempotency:    idem,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, cardlyHttp.Handlers{
		Cards:        cardHandler.NewHandler(cardService, transactionService, logger),
		Transactions: txHandler.NewHandler(transactionService, logger),
		Commissions:  commissionHandler.NewHandler(commissionService, logger),
		Requests:     requestHandler.NewHandler(requestService, logger),
		Displays:     displayHandler.NewHandler(displayService, logger),
		Franchise:    franchiseHandler.NewHandler(franchiseService, logger),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.Int("port", cfg.App.Port))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
