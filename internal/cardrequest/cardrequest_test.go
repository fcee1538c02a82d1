package cardrequest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/cardrequest"
)

func TestTransition(t *testing.T) {
	all := []cardrequest.Status{
		cardrequest.StatusPending,
		cardrequest.StatusApproved,
		cardrequest.StatusDenied,
		cardrequest.StatusShipped,
		cardrequest.StatusDelivered,
	}

	allowed := map[[2]cardrequest.Status]bool{
		{cardrequest.StatusPending, cardrequest.StatusApproved}:  true,
		{cardrequest.StatusPending, cardrequest.StatusDenied}:    true,
		{cardrequest.StatusApproved, cardrequest.StatusShipped}:  true,
		{cardrequest.StatusShipped, cardrequest.StatusDelivered}: true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"_"+string(to), func(t *testing.T) {
				err := cardrequest.Transition(from, to)
				if allowed[[2]cardrequest.Status{from, to}] {
					assert.NoError(t, err)
					return
				}

				assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
				assert.Contains(t, err.Error(), string(from))
				assert.Contains(t, err.Error(), string(to))
			})
		}
	}
}

func TestCardRequest_Advance(t *testing.T) {
	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	earlier := at.Add(-48 * time.Hour)

	type testCase struct {
		name     string
		request  cardrequest.CardRequest
		to       cardrequest.Status
		dates    cardrequest.Dates
		wantKind apperr.Kind
		check    func(t *testing.T, r *cardrequest.CardRequest)
	}

	tests := []testCase{
		{
			name:    "ApproveStampsDate",
			request: cardrequest.CardRequest{Status: cardrequest.StatusPending},
			to:      cardrequest.StatusApproved,
			check: func(t *testing.T, r *cardrequest.CardRequest) {
				require.NotNil(t, r.ApprovedAt)
				assert.Equal(t, at, *r.ApprovedAt)
			},
		},
		{
			name:    "SuppliedDateWins",
			request: cardrequest.CardRequest{Status: cardrequest.StatusPending},
			to:      cardrequest.StatusApproved,
			dates:   cardrequest.Dates{ApprovedAt: &earlier},
			check: func(t *testing.T, r *cardrequest.CardRequest) {
				assert.Equal(t, earlier, *r.ApprovedAt)
			},
		},
		{
			name:     "DeliveryDateWithoutShipment",
			request:  cardrequest.CardRequest{Status: cardrequest.StatusApproved, ApprovedAt: &earlier},
			to:       cardrequest.StatusApproved,
			dates:    cardrequest.Dates{DeliveredAt: &at},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "ShipmentBeforeApproval",
			request:  cardrequest.CardRequest{Status: cardrequest.StatusApproved, ApprovedAt: &at},
			to:       cardrequest.StatusShipped,
			dates:    cardrequest.Dates{ShippedAt: &earlier},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "SkipShipping",
			request:  cardrequest.CardRequest{Status: cardrequest.StatusApproved},
			to:       cardrequest.StatusDelivered,
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:    "ShipKeepsApproval",
			request: cardrequest.CardRequest{Status: cardrequest.StatusApproved, ApprovedAt: &earlier},
			to:      cardrequest.StatusShipped,
			check: func(t *testing.T, r *cardrequest.CardRequest) {
				assert.Equal(t, earlier, *r.ApprovedAt)
				assert.Equal(t, at, *r.ShippedAt)
				assert.Nil(t, r.DeliveredAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.request

			err := r.Advance(&tt.to, tt.dates, at)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, r.Status)

			if tt.check != nil {
				tt.check(t, &r)
			}
		})
	}
}
