package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

// memStore is an in-memory ledger. An open LedgerTx holds mu, which
// serializes ledger operations the way the card row lock does.
type memStore struct {
	mu sync.Mutex

	cards          map[uuid.UUID]card.Card
	establishments map[uuid.UUID]franchise.Establishment
	rates          map[uuid.UUID]decimal.Decimal
	transactions   []*transaction.Transaction
	commissions    []*commission.Commission
	audits         []audit.Entry

	commissionErr  error
}

func newMemStore() *memStore {
	return &memStore{
		cards:          map[uuid.UUID]card.Card{},
		establishments: map[uuid.UUID]franchise.Establishment{},
		rates:          map[uuid.UUID]decimal.Decimal{},
	}
}

func (m *memStore) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			return t, nil
		}
	}

	return nil, apperr.NotFound("transaction", id)
}

func (m *memStore) ListTransactions(context.Context, access.Scope, transaction.ListFilter, transaction.PageRequest) ([]*transaction.Transaction, error) {
	return m.transactions, nil
}

func (m *memStore) SummarizeTransactions(context.Context, access.Scope, transaction.ListFilter) ([]transaction.StatusTotal, error) {
	return nil, nil
}

func (m *memStore) BeginLedger(context.Context) (transaction.LedgerTx, error) {
	m.mu.Lock()
	return &memLedger{store: m, cards: map[uuid.UUID]card.Card{}}, nil
}

func (m *memStore) card(id uuid.UUID) card.Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cards[id]
}

type memLedger struct {
	store *memStore
	done  bool

	cards        map[uuid.UUID]card.Card
	transactions []*transaction.Transaction
	commissions  []*commission.Commission
	audits       []audit.Entry
}

func (l *memLedger) LockCard(_ context.Context, id uuid.UUID) (*card.Card, error) {
	c, ok := l.store.cards[id]
	if !ok {
		return nil, apperr.NotFound("card", id)
	}

	return &c, nil
}

func (l *memLedger) GetEstablishment(_ context.Context, id uuid.UUID) (*franchise.Establishment, error) {
	e, ok := l.store.establishments[id]
	if !ok {
		return nil, apperr.NotFound("establishment", id)
	}

	return &e, nil
}

func (l *memLedger) CommissionRate(_ context.Context, franchiseeID uuid.UUID) (decimal.Decimal, error) {
	return l.store.rates[franchiseeID], nil
}

func (l *memLedger) SaveCard(_ context.Context, c *card.Card) error {
	l.cards[c.ID] = *c
	return nil
}

func (l *memLedger) CreateTransaction(_ context.Context, t *transaction.Transaction) error {
	t.ID = uuid.New()
	l.transactions = append(l.transactions, t)

	return nil
}

func (l *memLedger) CreateCommission(_ context.Context, c *commission.Commission) error {
	if l.store.commissionErr != nil {
		return l.store.commissionErr
	}

	c.ID = uuid.New()
	l.commissions = append(l.commissions, c)

	return nil
}

func (l *memLedger) RecordAudit(_ context.Context, e audit.Entry) error {
	l.audits = append(l.audits, e)
	return nil
}

func (l *memLedger) Commit() error {
	for id, c := range l.cards {
		l.store.cards[id] = c
	}

	l.store.transactions = append(l.store.transactions, l.transactions...)
	l.store.commissions = append(l.store.commissions, l.commissions...)
	l.store.audits = append(l.store.audits, l.audits...)
	l.done = true
	l.store.mu.Unlock()

	return nil
}

func (l *memLedger) Rollback() error {
	if !l.done {
		l.done = true
		l.store.mu.Unlock()
	}

	return nil
}

type fixture struct {
	store   *memStore
	svc     *transaction.Service
	cardID  uuid.UUID
	estID   uuid.UUID
	franID  uuid.UUID
	cashier access.Actor
}

func newFixture(t *testing.T, rate string) *fixture {
	t.Helper()

	f := &fixture{store: newMemStore(), cardID: uuid.New(), estID: uuid.New(), franID: uuid.New()}

	f.store.rates[f.franID] = decimal.RequireFromString(rate)
	f.store.establishments[f.estID] = franchise.Establishment{ID: f.estID, FranchiseeID: f.franID}
	f.store.cards[f.cardID] = card.Card{ID: f.cardID, Code: "CRD-1", Status: card.StatusAvailable, Balance: decimal.Zero, FranchiseeID: f.franID}

	f.cashier = access.Actor{UserID: uuid.New(), Role: access.RoleEstablishment, FranchiseeID: f.franID, EstablishmentID: f.estID}
	f.svc = transaction.NewService(f.store, observability.NewMetrics(), zap.NewNop())

	return f
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLedger_EndToEnd(t *testing.T) {
	f := newFixture(t, "15")
	ctx := context.Background()

	res, err := f.svc.Recharge(ctx, f.cashier, transaction.RechargeParams{CardID: f.cardID, Amount: amount("50.00")})
	require.NoError(t, err)
	assert.Equal(t, "50.00", res.Card.Balance.StringFixed(2))
	assert.Equal(t, card.StatusActive, res.Card.Status)
	assert.Nil(t, res.Transaction.Commission)

	res, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("30.00")})
	require.NoError(t, err)
	assert.Equal(t, "20.00", res.Card.Balance.StringFixed(2))
	assert.Equal(t, card.StatusActive, res.Card.Status)
	require.NotNil(t, res.Transaction.Commission)
	assert.Equal(t, "4.50", res.Transaction.Commission.Amount.StringFixed(2))
	assert.Equal(t, commission.StatusPending, res.Transaction.Commission.Status)

	res, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("20.00")})
	require.NoError(t, err)
	assert.True(t, res.Card.Balance.IsZero())
	assert.Equal(t, card.StatusUsed, res.Card.Status)
	assert.Equal(t, "3.00", res.Transaction.Commission.Amount.StringFixed(2))

	_, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("0.01")})
	assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))

	stored := f.store.card(f.cardID)
	assert.True(t, stored.Balance.IsZero())
	assert.Equal(t, card.StatusUsed, stored.Status)

	require.Len(t, f.store.transactions, 3)
	require.Len(t, f.store.commissions, 2)
	assert.Len(t, f.store.audits, 3)

	for _, c := range f.store.commissions {
		assert.Equal(t, f.franID, c.FranchiseeID)
		assert.Equal(t, f.estID, c.EstablishmentID)
		assert.True(t, c.Percentage.Equal(amount("15")))
	}
}

func TestLedger_RateChangeIsNotRetroactive(t *testing.T) {
	f := newFixture(t, "10")
	ctx := context.Background()

	_, err := f.svc.Recharge(ctx, f.cashier, transaction.RechargeParams{CardID: f.cardID, Amount: amount("100")})
	require.NoError(t, err)

	_, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("40")})
	require.NoError(t, err)

	f.store.rates[f.franID] = amount("20")

	_, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("40")})
	require.NoError(t, err)

	require.Len(t, f.store.commissions, 2)
	assert.Equal(t, "4.00", f.store.commissions[0].Amount.StringFixed(2))
	assert.Equal(t, "8.00", f.store.commissions[1].Amount.StringFixed(2))
}

func TestLedger_FailedCommissionRollsBackEverything(t *testing.T) {
	f := newFixture(t, "15")
	ctx := context.Background()

	_, err := f.svc.Recharge(ctx, f.cashier, transaction.RechargeParams{CardID: f.cardID, Amount: amount("50")})
	require.NoError(t, err)

	f.store.commissionErr = errors.New("connection reset")

	_, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("10")})
	require.Error(t, err)

	stored := f.store.card(f.cardID)
	assert.Equal(t, "50.00", stored.Balance.StringFixed(2))
	assert.Len(t, f.store.transactions, 1)
	assert.Empty(t, f.store.commissions)
}

func TestLedger_DuplicateCommissionRollsBackUse(t *testing.T) {
	f := newFixture(t, "15")
	ctx := context.Background()

	_, err := f.svc.Recharge(ctx, f.cashier, transaction.RechargeParams{CardID: f.cardID, Amount: amount("50")})
	require.NoError(t, err)

	f.store.commissionErr = apperr.Conflict("commission already exists (commissions_transaction_id_key)")

	_, err = f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("10")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	stored := f.store.card(f.cardID)
	assert.Equal(t, "50.00", stored.Balance.StringFixed(2))
	assert.Len(t, f.store.transactions, 1)
	assert.Empty(t, f.store.commissions)
}

func TestLedger_ConcurrentUsesNeverOverdraw(t *testing.T) {
	f := newFixture(t, "5")
	ctx := context.Background()

	_, err := f.svc.Recharge(ctx, f.cashier, transaction.RechargeParams{CardID: f.cardID, Amount: amount("100")})
	require.NoError(t, err)

	const workers = 20

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.svc.Use(ctx, f.cashier, transaction.UseParams{CardID: f.cardID, Amount: amount("10")})

			mu.Lock()
			defer mu.Unlock()

			switch apperr.KindOf(err) {
			case "":
				ok++
			case apperr.KindInsufficientBalance:
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, rejected)

	stored := f.store.card(f.cardID)
	assert.True(t, stored.Balance.IsZero())
	assert.Equal(t, card.StatusUsed, stored.Status)
	assert.Len(t, f.store.commissions, 10)
}

func TestLedger_CardOfAnotherFranchisee(t *testing.T) {
	f := newFixture(t, "15")

	foreign := uuid.New()
	f.store.cards[foreign] = card.Card{ID: foreign, Status: card.StatusActive, Balance: amount("10"), FranchiseeID: uuid.New()}

	_, err := f.svc.Use(context.Background(), f.cashier, transaction.UseParams{CardID: foreign, Amount: amount("1")})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Empty(t, f.store.transactions)
}
