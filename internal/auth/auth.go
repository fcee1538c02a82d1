// Package auth turns bearer tokens into access actors.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	Role            access.Role `json:"role"`
	FranchisorID    *uuid.UUID  `json:"franchisor_id,omitempty"`
	FranchiseeID    *uuid.UUID  `json:"franchisee_id,omitempty"`
	EstablishmentID *uuid.UUID  `json:"establishment_id,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue signs an HS256 token for actor valid for ttl.
func (v *Verifier) Issue(actor access.Actor, ttl time.Duration) (string, error) {
	now := v.now().UTC()

	claims := Claims{
		Role:            actor.Role,
		FranchisorID:    optional(actor.FranchisorID),
		FranchiseeID:    optional(actor.FranchiseeID),
		EstablishmentID: optional(actor.EstablishmentID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Parse validates tokenString and returns the actor it names.
func (v *Verifier) Parse(tokenString string) (access.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(v.now)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return access.Actor{}, ErrExpiredToken
		}

		return access.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return access.Actor{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Actor{}, ErrInvalidToken
	}

	actor := access.Actor{
		UserID:          userID,
		Role:            claims.Role,
		FranchisorID:    deref(claims.FranchisorID),
		FranchiseeID:    deref(claims.FranchiseeID),
		EstablishmentID: deref(claims.EstablishmentID),
	}

	if err := actor.Validate(); err != nil {
		return access.Actor{}, ErrInvalidToken
	}

	return actor, nil
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the resolved actor in the request context.
func Middleware(v *Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("auth: missing token", zap.String("path", r.URL.Path))
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")

				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				logger.Warn("auth: invalid token format", zap.String("path", r.URL.Path))
				respond.Error(w, http.StatusUnauthorized, "invalid authorization header")

				return
			}

			actor, err := v.Parse(token)
			if err != nil {
				logger.Warn("auth: rejected token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				respond.Error(w, http.StatusUnauthorized, err.Error())

				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithActor(r.Context(), actor)))
		})
	}
}

func optional(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}

	return &id
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}

	return *id
}
