package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/auth"
)

func establishmentActor() access.Actor {
	return access.Actor{
		UserID:          uuid.New(),
		Role:            access.RoleEstablishment,
		FranchiseeID:    uuid.New(),
		EstablishmentID: uuid.New(),
	}
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := auth.NewVerifier("s3cret", "cardly")
	actor := establishmentActor()

	token, err := v.Issue(actor, time.Hour)
	require.NoError(t, err)

	got, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestVerifier_Parse(t *testing.T) {
	type testCase struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}

	tests := []testCase{
		{
			name: "Expired",
			token: func(t *testing.T) string {
				token, err := auth.NewVerifier("s3cret", "cardly").Issue(establishmentActor(), -time.Minute)
				require.NoError(t, err)

				return token
			},
			wantErr: auth.ErrExpiredToken,
		},
		{
			name: "WrongSecret",
			token: func(t *testing.T) string {
				token, err := auth.NewVerifier("other", "cardly").Issue(establishmentActor(), time.Hour)
				require.NoError(t, err)

				return token
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "WrongIssuer",
			token: func(t *testing.T) string {
				token, err := auth.NewVerifier("s3cret", "elsewhere").Issue(establishmentActor(), time.Hour)
				require.NoError(t, err)

				return token
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "ActorMissingScope",
			token: func(t *testing.T) string {
				actor := establishmentActor()
				actor.EstablishmentID = uuid.Nil

				token, err := auth.NewVerifier("s3cret", "cardly").Issue(actor, time.Hour)
				require.NoError(t, err)

				return token
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "NoneAlgorithm",
			token: func(t *testing.T) string {
				claims := auth.Claims{
					Role: access.RoleFranchisor,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   uuid.NewString(),
						Issuer:    "cardly",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}

				token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)

				return token
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "Garbage",
			token:   func(*testing.T) string { return "not-a-token" },
			wantErr: auth.ErrInvalidToken,
		},
	}

	v := auth.NewVerifier("s3cret", "cardly")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Parse(tt.token(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMiddleware(t *testing.T) {
	v := auth.NewVerifier("s3cret", "cardly")
	actor := establishmentActor()

	token, err := v.Issue(actor, time.Hour)
	require.NoError(t, err)

	var seen access.Actor

	handler := auth.Middleware(v, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = access.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "Invalid", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "Valid", header: "Bearer " + token, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cards", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, actor, seen)
}
