package commission_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
)

func TestCalculate(t *testing.T) {
	type testCase struct {
		name   string
		amount string
		rate   string
		want   string
	}

	tests := []testCase{
		{name: "Exact", amount: "30.00", rate: "15", want: "4.50"},
		{name: "SecondUsage", amount: "20.00", rate: "15", want: "3.00"},
		{name: "RoundsHalfAwayFromZero", amount: "0.10", rate: "25", want: "0.03"},
		{name: "RoundsDown", amount: "10.01", rate: "12.5", want: "1.25"},
		{name: "ZeroRate", amount: "99.99", rate: "0", want: "0.00"},
		{name: "FullRate", amount: "12.34", rate: "100", want: "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commission.Calculate(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCommission_Transition(t *testing.T) {
	type testCase struct {
		name     string
		from     commission.Status
		to       commission.Status
		wantErr  bool
		wantPaid bool
	}

	tests := []testCase{
		{name: "PendingToPaid", from: commission.StatusPending, to: commission.StatusPaid, wantPaid: true},
		{name: "PendingToCancelled", from: commission.StatusPending, to: commission.StatusCancelled},
		{name: "PaidToCancelled", from: commission.StatusPaid, to: commission.StatusCancelled, wantErr: true},
		{name: "CancelledToPaid", from: commission.StatusCancelled, to: commission.StatusPaid, wantErr: true},
		{name: "PendingToPending", from: commission.StatusPending, to: commission.StatusPending, wantErr: true},
	}

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &commission.Commission{Status: tt.from}

			err := c.Transition(tt.to, at)
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
				assert.Equal(t, tt.from, c.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, c.Status)

			if tt.wantPaid {
				require.NotNil(t, c.PaidAt)
				assert.Equal(t, at, *c.PaidAt)
			} else {
				assert.Nil(t, c.PaidAt)
			}
		})
	}
}
