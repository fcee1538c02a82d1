package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/auth"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/cardrequest"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/display"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	cardlyhttp "github.com/MrJamesThe3rd/cardly/internal/http"
	cardhttp "github.com/MrJamesThe3rd/cardly/internal/http/card"
	cardrequesthttp "github.com/MrJamesThe3rd/cardly/internal/http/cardrequest"
	commissionhttp "github.com/MrJamesThe3rd/cardly/internal/http/commission"
	displayhttp "github.com/MrJamesThe3rd/cardly/internal/http/display"
	franchisehttp "github.com/MrJamesThe3rd/cardly/internal/http/franchise"
	transactionhttp "github.com/MrJamesThe3rd/cardly/internal/http/transaction"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type fixture struct {
	router    http.Handler
	verifier  *auth.Verifier
	cards     *card.MockRepository
	ledger    *transaction.MockRepository
	ledgerTx  *transaction.MockLedgerTx
	displays  *display.MockRepository
	franchise *franchise.MockRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	f := &fixture{
		verifier:  auth.NewVerifier("test-secret", "cardly"),
		cards:     card.NewMockRepository(ctrl),
		ledger:    transaction.NewMockRepository(ctrl),
		ledgerTx:  transaction.NewMockLedgerTx(ctrl),
		displays:  display.NewMockRepository(ctrl),
		franchise: franchise.NewMockRepository(ctrl),
	}

	cardSvc := card.NewService(f.cards, card.NewMockEstablishmentFinder(ctrl), logger)
	ledgerSvc := transaction.NewService(f.ledger, metrics, logger)

	f.router = cardlyhttp.New(cardlyhttp.Options{
		Logger:         logger,
		Metrics:        metrics,
		Verifier:       f.verifier,
		AllowedOrigins: []string{"*"},
	}, cardlyhttp.Handlers{
		Cards:        cardhttp.NewHandler(cardSvc, ledgerSvc, logger),
		Transactions: transactionhttp.NewHandler(ledgerSvc, logger),
		Commissions:  commissionhttp.NewHandler(commission.NewService(commission.NewMockRepository(ctrl), logger), logger),
		Requests: cardrequesthttp.NewHandler(
			cardrequest.NewService(cardrequest.NewMockRepository(ctrl), cardrequest.NewMockEstablishmentFinder(ctrl), logger),
			logger,
		),
		Displays: displayhttp.NewHandler(
			display.NewService(f.displays, display.NewMockEstablishmentFinder(ctrl), logger),
			logger,
		),
		Franchise: franchisehttp.NewHandler(franchise.NewService(f.franchise, franchise.NewMockLinker(ctrl), logger), logger),
	})

	return f
}

func (f *fixture) do(t *testing.T, actor *access.Actor, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if actor != nil {
		token, err := f.verifier.Issue(*actor, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRouter_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, nil, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, f.do(t, nil, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, nil, http.MethodGet, "/api/v1/cards", "").Code)
}

func TestRouter_UseCard(t *testing.T) {
	franchiseeID := uuid.New()
	est := &franchise.Establishment{ID: uuid.New(), FranchiseeID: franchiseeID}
	actor := access.Actor{
		UserID:          uuid.New(),
		Role:            access.RoleEstablishment,
		FranchiseeID:    franchiseeID,
		EstablishmentID: est.ID,
	}

	type testCase struct {
		name       string
		balance    string
		body       string
		wantStatus int
		wantKind   string
	}

	tests := []testCase{
		{
			name:       "InsufficientBalance",
			balance:    "5.00",
			body:       `{"amount":"10.00"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "insufficient_balance",
		},
		{
			name:       "Committed",
			balance:    "100.00",
			body:       `{"amount":"40.00","customer_name":"Ana"}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := &card.Card{
				ID:           uuid.New(),
				Code:         "CRD-1",
				Balance:      decimal.RequireFromString(tt.balance),
				Status:       card.StatusActive,
				FranchiseeID: franchiseeID,
			}

			f.ledger.EXPECT().BeginLedger(gomock.Any()).Return(f.ledgerTx, nil)
			f.ledgerTx.EXPECT().GetEstablishment(gomock.Any(), est.ID).Return(est, nil)
			f.ledgerTx.EXPECT().LockCard(gomock.Any(), c.ID).Return(c, nil)
			f.ledgerTx.EXPECT().Rollback().Return(nil)

			if tt.wantStatus == http.StatusOK {
				f.ledgerTx.EXPECT().SaveCard(gomock.Any(), c).Return(nil)
				f.ledgerTx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				f.ledgerTx.EXPECT().CommissionRate(gomock.Any(), franchiseeID).Return(decimal.NewFromInt(15), nil)
				f.ledgerTx.EXPECT().CreateCommission(gomock.Any(), gomock.Any()).Return(nil)
				f.ledgerTx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
				f.ledgerTx.EXPECT().Commit().Return(nil)
			}

			rec := f.do(t, &actor, http.MethodPost, "/api/v1/cards/"+c.ID.String()+"?action=use", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			body := decode(t, rec)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, body["kind"])
				return
			}

			assert.Equal(t, "60.00", body["balance"])
			assert.Equal(t, "ACTIVE", body["status"])

			entry, ok := body["transaction"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "USAGE", entry["kind"])
			assert.Equal(t, "6.00", entry["commission_amount"])
		})
	}
}

func TestRouter_CardErrors(t *testing.T) {
	franchisee := access.Actor{UserID: uuid.New(), Role: access.RoleFranchisee, FranchiseeID: uuid.New()}

	t.Run("OutOfScopeIsForbidden", func(t *testing.T) {
		f := newFixture(t)
		other := &card.Card{ID: uuid.New(), FranchiseeID: uuid.New(), Status: card.StatusActive}
		f.cards.EXPECT().GetCard(gomock.Any(), other.ID).Return(other, nil)

		rec := f.do(t, &franchisee, http.MethodGet, "/api/v1/cards/"+other.ID.String(), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MalformedID", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, &franchisee, http.MethodGet, "/api/v1/cards/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, &franchisee, http.MethodPost, "/api/v1/cards/"+uuid.NewString()+"?action=explode", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NonPositiveAmountNeverTouchesStore", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, &franchisee, http.MethodPost, "/api/v1/cards/"+uuid.NewString()+"?action=recharge", `{"amount":"0"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_DisplayUpdateUnbinds(t *testing.T) {
	f := newFixture(t)
	franchisee := access.Actor{UserID: uuid.New(), Role: access.RoleFranchisee, FranchiseeID: uuid.New()}
	estID := uuid.New()
	installedAt := time.Now()

	d := &display.Display{
		ID:              uuid.New(),
		FranchiseeID:    franchisee.FranchiseeID,
		EstablishmentID: &estID,
		UnitType:        "counter",
		Status:          display.StatusInstalled,
		InstalledAt:     &installedAt,
	}

	f.displays.EXPECT().
		UpdateDisplay(gomock.Any(), d.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, mutate func(*display.Display) error, _ audit.Entry) (*display.Display, error) {
			if err := mutate(d); err != nil {
				return nil, err
			}

			return d, nil
		})

	rec := f.do(t, &franchisee, http.MethodPut, "/api/v1/displays/"+d.ID.String(), `{"establishment_id":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "AVAILABLE", body["status"])
	assert.Nil(t, body["establishment_id"])
}
