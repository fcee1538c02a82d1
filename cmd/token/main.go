// Command token issues a bearer token for an operator, e.g. the
// CARDLY_TOKEN an establishment terminal runs with.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/auth"
	"github.com/MrJamesThe3rd/cardly/internal/config"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
)

func main() {
	var (
		role          = flag.String("role", "", "FRANCHISOR, FRANCHISEE or ESTABLISHMENT")
		user          = flag.String("user", "", "user id (random when empty)")
		franchisor    = flag.String("franchisor", "", "franchisor id")
		franchisee    = flag.String("franchisee", "", "franchisee id")
		establishment = flag.String("establishment", "", "establishment id")
		ttl           = flag.Duration("ttl", 0, "token lifetime (JWT_TTL when zero)")
	)

	flag.Parse()

	logger, err := observability.NewLogger("error")
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	actor := access.Actor{Role: access.Role(strings.ToUpper(*role))}

	ids := []struct {
		raw  string
		name string
		dst  *uuid.UUID
	}{
		{*user, "user", &actor.UserID},
		{*franchisor, "franchisor", &actor.FranchisorID},
		{*franchisee, "franchisee", &actor.FranchiseeID},
		{*establishment, "establishment", &actor.EstablishmentID},
	}

	for _, id := range ids {
		if id.raw == "" {
			continue
		}

		parsed, err := uuid.Parse(id.raw)
		if err != nil {
			logger.Fatal("invalid id", zap.String("flag", id.name), zap.Error(err))
		}

		*id.dst = parsed
	}

	if actor.UserID == uuid.Nil {
		actor.UserID = uuid.New()
	}

	if err := actor.Validate(); err != nil {
		logger.Fatal("invalid actor", zap.Error(err))
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer).Issue(actor, lifetime)
	if err != nil {
		logger.Fatal("failed to issue token", zap.Error(err))
	}

	fmt.Println(token)
}
